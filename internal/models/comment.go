package models

import "time"

type Comment struct {
	ID         int       `json:"id"`
	Text       string    `json:"text"`
	AuthorID   int       `json:"author_id"`
	DocumentID int       `json:"document_id"`
	Date       time.Time `json:"date"`
}
