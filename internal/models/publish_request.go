package models

import "time"

// PublishRequest — заявка автора на публикацию документа.
// На документ допускается не более одной PENDING-заявки одновременно.
type PublishRequest struct {
	ID          int           `json:"id"`
	Status      RequestStatus `json:"status"`
	Motivation  string        `json:"motivation,omitempty"`
	DateRequest time.Time     `json:"date_request"`
	DateResult  *time.Time    `json:"date_result,omitempty"`
	DocumentID  int           `json:"document_id"`
	ModeratorID *int          `json:"moderator_id,omitempty"`
}
