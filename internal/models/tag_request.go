package models

import (
	"archivio/internal/apperrors"
	"time"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type TagChangeOperation string

const (
	TagOperationAdd    TagChangeOperation = "ADD"
	TagOperationRemove TagChangeOperation = "REMOVE"
)

// TagChangeRequest — заявка на изменение тегов документа.
// Ровно одно из полей ExistingTagLabel/ProposedLabel должно быть заполнено:
// существующий тег прикрепляется по label, новый создаётся только после
// одобрения модератором (чтобы не плодить теги без документов).
type TagChangeRequest struct {
	ID               int                `json:"id"`
	Status           RequestStatus      `json:"status"`
	DateRequest      time.Time          `json:"date_request"`
	DateResult       *time.Time         `json:"date_result,omitempty"`
	DocumentID       int                `json:"document_id"`
	Operation        TagChangeOperation `json:"operation"`
	ExistingTagLabel string             `json:"existing_tag_label,omitempty"`
	ProposedLabel    string             `json:"proposed_label,omitempty"`
	ModeratorID      *int               `json:"moderator_id,omitempty"`
}

func (r *TagChangeRequest) IsForExistingTag() bool {
	return r.ExistingTagLabel != "" && r.ProposedLabel == ""
}

func (r *TagChangeRequest) IsForNewLabel() bool {
	return r.ExistingTagLabel == "" && r.ProposedLabel != ""
}

// NewRequestForExistingTag — PENDING-заявка на ADD или REMOVE существующего тега.
func NewRequestForExistingTag(documentID int, label string, op TagChangeOperation) *TagChangeRequest {
	return &TagChangeRequest{
		Status:           RequestPending,
		DateRequest:      time.Now(),
		DocumentID:       documentID,
		Operation:        op,
		ExistingTagLabel: label,
	}
}

// NewRequestForNewLabel — PENDING-заявка на ADD нового тега (тег ещё не создан).
func NewRequestForNewLabel(documentID int, proposedLabel string) *TagChangeRequest {
	return &TagChangeRequest{
		Status:        RequestPending,
		DateRequest:   time.Now(),
		DocumentID:    documentID,
		Operation:     TagOperationAdd,
		ProposedLabel: proposedLabel,
	}
}

// Validate проверяет структурные инварианты заявки.
func (r *TagChangeRequest) Validate() error {
	if r.Operation != TagOperationAdd && r.Operation != TagOperationRemove {
		return apperrors.Validation("недопустимая операция над тегом")
	}
	if r.DocumentID == 0 {
		return apperrors.Validation("документ обязателен")
	}
	if r.Status == "" {
		return apperrors.Validation("статус обязателен")
	}
	if r.IsForExistingTag() == r.IsForNewLabel() {
		return apperrors.Validation("должно быть заполнено ровно одно из existing_tag_label и proposed_label")
	}
	if r.Operation == TagOperationRemove && !r.IsForExistingTag() {
		return apperrors.Validation("REMOVE требует existing_tag_label")
	}
	return nil
}
