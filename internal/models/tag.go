package models

import "strings"

// Tag — label уникален без учёта регистра и крайних пробелов,
// хранится в исходном (обрезанном) виде.
type Tag struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// NormalizeLabel — форма для сравнения label'ов (не для хранения).
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
