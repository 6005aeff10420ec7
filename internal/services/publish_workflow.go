package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PublishRequestStore interface {
	AddRequest(ctx context.Context, req *models.PublishRequest) error
	GetPendingByDocument(ctx context.Context, documentID int) (*models.PublishRequest, error)
	GetByStatus(ctx context.Context, status models.RequestStatus) ([]*models.PublishRequest, error)
	GetByModerator(ctx context.Context, moderatorID int) ([]*models.PublishRequest, error)
	GetByAuthor(ctx context.Context, authorID int) ([]*models.PublishRequest, error)
	UpdateStatusByDocument(ctx context.Context, documentID, moderatorID int, status models.RequestStatus, dateResult time.Time) error
}

// PublishWorkflowService — workflow публикации документа:
// DRAFT -> (заявка автора) -> PENDING -> (решение модератора) -> PUBLISHED | DRAFT.
type PublishWorkflowService struct {
	users UserStore
	docs  DocumentStore
	reqs  PublishRequestStore
	tx    TxRunner
}

func NewPublishWorkflowService(users UserStore, docs DocumentStore, reqs PublishRequestStore, tx TxRunner) *PublishWorkflowService {
	return &PublishWorkflowService{users: users, docs: docs, reqs: reqs, tx: tx}
}

// AskForPublication — автор подаёт заявку; на документ допустима
// только одна PENDING-заявка одновременно.
func (s *PublishWorkflowService) AskForPublication(ctx context.Context, userID, docID int, motivation string) (*models.PublishRequest, error) {
	logger.Log.Info("Заявка на публикацию (service)", zap.Int("doc_id", docID), zap.Int("user_id", userID))

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

	pending, err := s.reqs.GetPendingByDocument(ctx, docID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка проверки pending-заявки", err)
	}
	if pending != nil {
		return nil, apperrors.Conflict("документ уже ожидает решения")
	}

	req := &models.PublishRequest{
		Status:      models.RequestPending,
		Motivation:  motivation,
		DateRequest: time.Now(),
		DocumentID:  docID,
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.reqs.AddRequest(ctx, req); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "ошибка сохранения заявки", err)
		}
		return s.docs.UpdateStatus(ctx, docID, models.DocumentPending)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// DecidePublishRequest — решение модератора по PENDING-заявке документа.
// APPROVED публикует документ, REJECTED возвращает его в DRAFT.
func (s *PublishWorkflowService) DecidePublishRequest(ctx context.Context, moderatorID, docID int, decision models.RequestStatus) error {
	logger.Log.Info("Решение по заявке на публикацию (service)",
		zap.Int("doc_id", docID), zap.String("decision", string(decision)), zap.Int("moderator_id", moderatorID))

	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return err
	}
	if decision != models.RequestApproved && decision != models.RequestRejected {
		return apperrors.Validation("недопустимое решение")
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		pending, err := s.reqs.GetPendingByDocument(ctx, docID)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "ошибка проверки pending-заявки", err)
		}
		if pending == nil {
			return apperrors.State("по этому документу нет pending-заявки")
		}

		if err := s.reqs.UpdateStatusByDocument(ctx, docID, moderatorID, decision, time.Now()); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "ошибка решения заявки", err)
		}

		newStatus := models.DocumentDraft
		if decision == models.RequestApproved {
			newStatus = models.DocumentPublished
		}
		return s.docs.UpdateStatus(ctx, docID, newStatus)
	})
}

// PendingPublishRequests — очередь заявок для модератора.
func (s *PublishWorkflowService) PendingPublishRequests(ctx context.Context, moderatorID int) ([]*models.PublishRequest, error) {
	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}
	return s.reqs.GetByStatus(ctx, models.RequestPending)
}

// PublishRequestHistory — решённые данным модератором заявки.
func (s *PublishWorkflowService) PublishRequestHistory(ctx context.Context, moderatorID int) ([]*models.PublishRequest, error) {
	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}
	return s.reqs.GetByModerator(ctx, moderatorID)
}

// PublishRequestsByAuthor — заявки по документам пользователя.
func (s *PublishWorkflowService) PublishRequestsByAuthor(ctx context.Context, userID int) ([]*models.PublishRequest, error) {
	return s.reqs.GetByAuthor(ctx, userID)
}

func (s *PublishWorkflowService) requireModerator(ctx context.Context, userID int) error {
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
