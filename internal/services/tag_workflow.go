package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserStore interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

type DocumentStore interface {
	GetDocumentByID(ctx context.Context, id int) (*models.Document, error)
	UpdateStatus(ctx context.Context, id int, status models.DocumentStatus) error
	AddTagToDocument(ctx context.Context, documentID int, label string) error
	RemoveTagFromDocument(ctx context.Context, documentID int, label string) error
}

type TagStore interface {
	AddTag(ctx context.Context, tag *models.Tag) error
	FindByLabelNormalized(ctx context.Context, label string) (*models.Tag, error)
}

type TagRequestStore interface {
	AddRequest(ctx context.Context, req *models.TagChangeRequest) error
	GetByID(ctx context.Context, id int) (*models.TagChangeRequest, error)
	GetPending(ctx context.Context) ([]*models.TagChangeRequest, error)
	GetByModerator(ctx context.Context, moderatorID int) ([]*models.TagChangeRequest, error)
	GetByAuthor(ctx context.Context, authorID int) ([]*models.TagChangeRequest, error)
	GetByDocument(ctx context.Context, documentID int) ([]*models.TagChangeRequest, error)
	ExistsPendingDuplicate(ctx context.Context, documentID int, op models.TagChangeOperation, existingTagLabel, proposedLabel string) (bool, error)
	UpdateStatus(ctx context.Context, requestID, moderatorID int, status models.RequestStatus, dateResult time.Time) error
}

// TxRunner выполняет функцию внутри одной транзакции стора.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TagWorkflowService — модерируемый workflow изменения тегов документа.
// Автор подаёт заявку (ADD существующего тега, ADD нового label'а или REMOVE),
// модератор выносит решение; сторона эффектов применяется только при APPROVED.
type TagWorkflowService struct {
	users UserStore
	docs  DocumentStore
	tags  TagStore
	reqs  TagRequestStore
	tx    TxRunner
}

func NewTagWorkflowService(users UserStore, docs DocumentStore, tags TagStore, reqs TagRequestStore, tx TxRunner) *TagWorkflowService {
	return &TagWorkflowService{users: users, docs: docs, tags: tags, reqs: reqs, tx: tx}
}

// ownedDocument проверяет, что документ существует и принадлежит пользователю.
func (s *TagWorkflowService) ownedDocument(ctx context.Context, userID, docID int) (*models.Document, error) {
	doc, err := s.docs.GetDocumentByID(ctx, docID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("документ не найден")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения документа", err)
	}
	if doc.AuthorID != userID {
		return nil, apperrors.Forbidden("вы не автор документа")
	}
	return doc, nil
}

// RequestAddExistingTag — заявка на прикрепление уже существующего тега.
func (s *TagWorkflowService) RequestAddExistingTag(ctx context.Context, userID, docID int, label string) (*models.TagChangeRequest, error) {
	logger.Log.Info("Заявка на существующий тег (service)", zap.Int("doc_id", docID), zap.String("label", label))
	if strings.TrimSpace(label) == "" {
		return nil, apperrors.Validation("label тега не может быть пустым")
	}
	if _, err := s.ownedDocument(ctx, userID, docID); err != nil {
		return nil, err
	}

	tag, err := s.tags.FindByLabelNormalized(ctx, label)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка поиска тега", err)
	}
	if tag == nil {
		return nil, apperrors.NotFound("тег не существует, для нового тега используйте заявку на новый label")
	}

	duplicate, err := s.reqs.ExistsPendingDuplicate(ctx, docID, models.TagOperationAdd, tag.Label, "")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка проверки дубликата", err)
	}
	if duplicate {
		return nil, apperrors.Conflict("по этому тегу уже есть pending-заявка на этот документ")
	}

	req := models.NewRequestForExistingTag(docID, tag.Label, models.TagOperationAdd)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.reqs.AddRequest(ctx, req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка сохранения заявки", err)
	}
	return req, nil
}

// RequestAddNewTag — заявка на новый тег; сам тег будет создан только после одобрения.
func (s *TagWorkflowService) RequestAddNewTag(ctx context.Context, userID, docID int, label string) (*models.TagChangeRequest, error) {
	logger.Log.Info("Заявка на новый тег (service)", zap.Int("doc_id", docID), zap.String("label", label))
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return nil, apperrors.Validation("label тега не может быть пустым")
	}
	if _, err := s.ownedDocument(ctx, userID, docID); err != nil {
		return nil, err
	}

	existing, err := s.tags.FindByLabelNormalized(ctx, trimmed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка поиска тега", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("тег с таким label уже существует, используйте заявку на существующий тег")
	}

	duplicate, err := s.reqs.ExistsPendingDuplicate(ctx, docID, models.TagOperationAdd, "", trimmed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка проверки дубликата", err)
	}
	if duplicate {
		return nil, apperrors.Conflict("по этому новому тегу уже есть pending-заявка на этот документ")
	}

	req := models.NewRequestForNewLabel(docID, trimmed)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.reqs.AddRequest(ctx, req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка сохранения заявки", err)
	}
	return req, nil
}

// RequestRemoveTag — заявка на отвязку тега от документа.
func (s *TagWorkflowService) RequestRemoveTag(ctx context.Context, userID, docID int, label string) (*models.TagChangeRequest, error) {
	logger.Log.Info("Заявка на удаление тега (service)", zap.Int("doc_id", docID), zap.String("label", label))
	if strings.TrimSpace(label) == "" {
		return nil, apperrors.Validation("label тега не может быть пустым")
	}
	if _, err := s.ownedDocument(ctx, userID, docID); err != nil {
		return nil, err
	}

	tag, err := s.tags.FindByLabelNormalized(ctx, label)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка поиска тега", err)
	}
	if tag == nil {
		return nil, apperrors.NotFound("тег не существует")
	}

	duplicate, err := s.reqs.ExistsPendingDuplicate(ctx, docID, models.TagOperationRemove, tag.Label, "")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка проверки дубликата", err)
	}
	if duplicate {
		return nil, apperrors.Conflict("по этому тегу уже есть pending-заявка на удаление")
	}

	req := models.NewRequestForExistingTag(docID, tag.Label, models.TagOperationRemove)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.reqs.AddRequest(ctx, req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка сохранения заявки", err)
	}
	return req, nil
}

// DecideTagRequest — решение модератора по PENDING-заявке.
// Эффекты одобрения (создание тега, привязка/отвязка) и смена статуса заявки
// выполняются в одной транзакции: либо всё, либо ничего.
func (s *TagWorkflowService) DecideTagRequest(ctx context.Context, moderatorID, requestID int, decision models.RequestStatus) error {
	logger.Log.Info("Решение по заявке на теги (service)",
		zap.Int("request_id", requestID), zap.String("decision", string(decision)), zap.Int("moderator_id", moderatorID))

	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return err
	}
	if decision != models.RequestApproved && decision != models.RequestRejected {
		return apperrors.Validation("недопустимое решение")
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		req, err := s.reqs.GetByID(ctx, requestID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("заявка не найдена")
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "ошибка получения заявки", err)
		}
		// Повторная проверка статуса внутри транзакции: уже решённая заявка
		// не перерешивается и эффекты не применяются второй раз.
		if req.Status != models.RequestPending {
			return apperrors.State("заявка уже решена")
		}

		now := time.Now()

		if decision == models.RequestRejected {
			// Отклонение без побочных эффектов: предложенный тег не создаётся.
			return s.reqs.UpdateStatus(ctx, requestID, moderatorID, models.RequestRejected, now)
		}

		switch req.Operation {
		case models.TagOperationAdd:
			switch {
			case req.IsForExistingTag():
				tag, err := s.tags.FindByLabelNormalized(ctx, req.ExistingTagLabel)
				if err != nil {
					return apperrors.Wrap(apperrors.KindInternal, "ошибка поиска тега", err)
				}
				if tag == nil {
					// Заявка ссылалась на тег, которого больше нет — нарушение инварианта.
					return apperrors.Internal("существующий тег из заявки не найден в каталоге: " + req.ExistingTagLabel)
				}
				if err := s.docs.AddTagToDocument(ctx, req.DocumentID, tag.Label); err != nil {
					return apperrors.Wrap(apperrors.KindInternal, "ошибка привязки тега", err)
				}
			case req.IsForNewLabel():
				label := strings.TrimSpace(req.ProposedLabel)
				if label == "" {
					return apperrors.Internal("предложенный label пуст")
				}
				if err := s.tags.AddTag(ctx, &models.Tag{Label: label}); err != nil {
					return apperrors.Wrap(apperrors.KindInternal, "ошибка создания тега", err)
				}
				if err := s.docs.AddTagToDocument(ctx, req.DocumentID, label); err != nil {
					return apperrors.Wrap(apperrors.KindInternal, "ошибка привязки тега", err)
				}
			default:
				return apperrors.Internal("ADD-заявка без existing_tag_label и без proposed_label")
			}

		case models.TagOperationRemove:
			if !req.IsForExistingTag() {
				return apperrors.Internal("REMOVE-заявка без existing_tag_label")
			}
			// Убирается только связь документ-тег, каталог тегов не трогаем.
			if err := s.docs.RemoveTagFromDocument(ctx, req.DocumentID, req.ExistingTagLabel); err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "ошибка отвязки тега", err)
			}

		default:
			return apperrors.Internal("неподдерживаемая операция: " + string(req.Operation))
		}

		return s.reqs.UpdateStatus(ctx, requestID, moderatorID, models.RequestApproved, now)
	})
}

// PendingTagRequests — очередь заявок для модератора.
func (s *TagWorkflowService) PendingTagRequests(ctx context.Context, moderatorID int) ([]*models.TagChangeRequest, error) {
	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}
	return s.reqs.GetPending(ctx)
}

// TagRequestHistory — решённые данным модератором заявки.
func (s *TagWorkflowService) TagRequestHistory(ctx context.Context, moderatorID int) ([]*models.TagChangeRequest, error) {
	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}
	return s.reqs.GetByModerator(ctx, moderatorID)
}

// TagRequestsByAuthor — заявки по документам пользователя.
func (s *TagWorkflowService) TagRequestsByAuthor(ctx context.Context, userID int) ([]*models.TagChangeRequest, error) {
	return s.reqs.GetByAuthor(ctx, userID)
}

// TagRequestsByDocument — история заявок документа, доступна только автору.
func (s *TagWorkflowService) TagRequestsByDocument(ctx context.Context, userID, docID int) ([]*models.TagChangeRequest, error) {
	if _, err := s.ownedDocument(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.reqs.GetByDocument(ctx, docID)
}

func (s *TagWorkflowService) requireModerator(ctx context.Context, userID int) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Forbidden("пользователь не найден")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "ошибка получения пользователя", err)
	}
	if !user.IsModerator && !user.IsAdmin {
		return apperrors.Forbidden("пользователь не модератор")
	}
	return nil
}
