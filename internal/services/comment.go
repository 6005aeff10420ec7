package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentService struct {
	comments *repository.CommentRepository
	docs     *repository.DocumentRepository
}

func NewCommentService(comments *repository.CommentRepository, docs *repository.DocumentRepository) *CommentService {
	return &CommentService{comments: comments, docs: docs}
}

func (s *CommentService) WriteComment(ctx context.Context, userID, docID int, text string) (*models.Comment, error) {
	logger.Log.Info("Комментарий (service)", zap.Int("doc_id", docID), zap.Int("user_id", userID))
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("текст комментария не может быть пустым")
	}
	if _, err := s.docs.GetDocumentByID(ctx, docID); errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("документ не найден")
	} else if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения документа", err)
	}

	c := &models.Comment{Text: text, AuthorID: userID, DocumentID: docID, Date: time.Now()}
	if err := s.comments.AddComment(ctx, c); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка сохранения комментария", err)
	}
	return c, nil
}

func (s *CommentService) DocumentComments(ctx context.Context, docID int) ([]*models.Comment, error) {
	return s.comments.GetCommentsByDocument(ctx, docID)
}
