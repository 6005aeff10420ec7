package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/repository"
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CollectionService struct {
	collections *repository.CollectionRepository
}

func NewCollectionService(collections *repository.CollectionRepository) *CollectionService {
	return &CollectionService{collections: collections}
}

func (s *CollectionService) ownedCollection(ctx context.Context, userID, collectionID int) (*models.Collection, error) {
	c, err := s.collections.GetCollectionByID(ctx, collectionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("коллекция не найдена")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения коллекции", err)
	}
	if c.OwnerID != userID {
		return nil, apperrors.Forbidden("вы не владелец коллекции")
	}
	return c, nil
}

func (s *CollectionService) CreateCollection(ctx context.Context, userID int, name, description string) (*models.Collection, error) {
	logger.Log.Info("Создание коллекции (service)", zap.String("name", name), zap.Int("user_id", userID))
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("имя коллекции обязательно")
	}
	c := &models.Collection{Name: name, Description: description, OwnerID: userID}
	if err := s.collections.AddCollection(ctx, c); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка создания коллекции", err)
	}
	return c, nil
}

func (s *CollectionService) DeleteCollection(ctx context.Context, userID, collectionID int) error {
	if _, err := s.ownedCollection(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.collections.DeleteCollection(ctx, collectionID)
}

func (s *CollectionService) AddDocumentToCollection(ctx context.Context, userID, docID, collectionID int) error {
	if _, err := s.ownedCollection(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.collections.AddDocumentToCollection(ctx, docID, collectionID)
}

func (s *CollectionService) RemoveDocumentFromCollection(ctx context.Context, userID, docID, collectionID int) error {
	if _, err := s.ownedCollection(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.collections.RemoveDocumentFromCollection(ctx, docID, collectionID)
}

func (s *CollectionService) UserCollections(ctx context.Context, userID int) ([]*models.Collection, error) {
	return s.collections.GetCollectionsByUser(ctx, userID)
}

func (s *CollectionService) CollectionDocuments(ctx context.Context, collectionID int) ([]*models.Document, error) {
	docs, err := s.collections.GetDocumentsByCollection(ctx, collectionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения документов коллекции", err)
	}
	return docs, nil
}
