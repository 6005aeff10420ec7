package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DocumentService struct {
	docs  *repository.DocumentRepository
	users *repository.UserRepository
}

func NewDocumentService(docs *repository.DocumentRepository, users *repository.UserRepository) *DocumentService {
	return &DocumentService{docs: docs, users: users}
}

type CreateDocumentInput struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Format       models.DocumentFormat `json:"format"`
	Period       string                `json:"period"`
	DocumentType string                `json:"document_type"`
	Instrument   string                `json:"instrument"`
	Tonality     string                `json:"tonality"`
	Compositor   string                `json:"compositor"`
}

// Create заводит документ в статусе DRAFT; имя файла в хранилище
// выводится из счётчика next_file_name автора.
func (s *DocumentService) Create(ctx context.Context, authorID int, input CreateDocumentInput, uploadDir string) (*models.Document, error) {
	logger.Log.Info("Создание документа (service)", zap.String("title", input.Title), zap.Int("author_id", authorID))
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.Validation("title обязателен")
	}
	if !input.Format.Valid() {
		return nil, apperrors.Validation("недопустимый format")
	}

	n, err := s.users.NextFileName(ctx, authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("пользователь не найден")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка генерации имени файла", err)
	}

	fileName := fmt.Sprintf("u%d_%d.%s", authorID, n, strings.ToLower(string(input.Format)))

	doc := &models.Document{
		Title:        input.Title,
		Description:  input.Description,
		Status:       models.DocumentDraft,
		Format:       input.Format,
		AuthorID:     authorID,
		FileName:     fileName,
		FilePath:     uploadDir + "/" + fileName,
		Period:       input.Period,
		DocumentType: input.DocumentType,
		Instrument:   input.Instrument,
		Tonality:     input.Tonality,
		Compositor:   input.Compositor,
		CreationDate: time.Now(),
	}
	if err := s.docs.AddDocument(ctx, doc); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка сохранения документа", err)
	}
	return doc, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id int) (*models.Document, error) {
	doc, err := s.docs.GetDocumentByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("документ не найден")
	}
	if err != nil {
		logger.Log.Error("Ошибка получения документа по ID (service)", zap.Int("doc_id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения документа", err)
	}
	return doc, nil
}

// Delete — удалить документ может только его автор.
func (s *DocumentService) Delete(ctx context.Context, userID, docID int) error {
	logger.Log.Info("Удаление документа (service)", zap.Int("doc_id", docID), zap.Int("user_id", userID))
	doc, err := s.docs.GetDocumentByID(ctx, docID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("документ не найден")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "ошибка получения документа", err)
	}
	if doc.AuthorID != userID {
		return apperrors.Forbidden("вы не автор документа")
	}
	if err := s.docs.DeleteDocument(ctx, docID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "ошибка удаления документа", err)
	}
	return nil
}

func (s *DocumentService) OwnDocuments(ctx context.Context, userID int) ([]*models.Document, error) {
	return s.docs.GetDocumentsByAuthor(ctx, userID)
}

// PublishedDocuments — публичная витрина.
func (s *DocumentService) PublishedDocuments(ctx context.Context) ([]*models.Document, error) {
	return s.docs.GetDocumentsByStatus(ctx, models.DocumentPublished)
}

func (s *DocumentService) Search(ctx context.Context, criteria models.DocumentSearchCriteria) ([]*models.Document, error) {
	return s.docs.Search(ctx, criteria)
}
