// Package apperrors — типизированные ошибки домена.
// Сервисы возвращают *Error с видом (Kind), хендлеры переводят вид в HTTP-статус.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION" // некорректный ввод или форма запроса
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT" // дубликат pending-запроса, занятый label и т.п.
	KindForbidden  Kind = "FORBIDDEN"
	KindState      Kind = "STATE"    // решение по запросу не в статусе PENDING
	KindInternal   Kind = "INTERNAL" // нарушение инварианта, ошибка стора
)

// HTTPStatus — соответствие вида ошибки HTTP-статусу.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindState:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is — два *Error совпадают, если совпадает Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func Validation(message string) *Error { return New(KindValidation, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }
func Forbidden(message string) *Error  { return New(KindForbidden, message) }
func State(message string) *Error      { return New(KindState, message) }
func Internal(message string) *Error   { return New(KindInternal, message) }

// KindOf возвращает вид ошибки (KindInternal для нетипизированных).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
