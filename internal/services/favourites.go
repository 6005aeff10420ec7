package services

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/repository"
	"context"

	"go.uber.org/zap"
)

// FavouritesService — избранные документы и коллекции пользователя.
// Ссылочную целостность id-шников обеспечивает стор (foreign key).
type FavouritesService struct {
	users *repository.UserRepository
}

func NewFavouritesService(users *repository.UserRepository) *FavouritesService {
	return &FavouritesService{users: users}
}

func (s *FavouritesService) AddDocument(ctx context.Context, userID, documentID int) error {
	logger.Log.Info("Документ в избранное (service)", zap.Int("user_id", userID), zap.Int("doc_id", documentID))
	return s.users.AddFavouriteDocument(ctx, userID, documentID)
}

func (s *FavouritesService) RemoveDocument(ctx context.Context, userID, documentID int) error {
	return s.users.RemoveFavouriteDocument(ctx, userID, documentID)
}

func (s *FavouritesService) AddCollection(ctx context.Context, userID, collectionID int) error {
	logger.Log.Info("Коллекция в избранное (service)", zap.Int("user_id", userID), zap.Int("collection_id", collectionID))
	return s.users.AddFavouriteCollection(ctx, userID, collectionID)
}

func (s *FavouritesService) RemoveCollection(ctx context.Context, userID, collectionID int) error {
	return s.users.RemoveFavouriteCollection(ctx, userID, collectionID)
}

func (s *FavouritesService) Documents(ctx context.Context, userID int) ([]*models.Document, error) {
	return s.users.GetFavouriteDocuments(ctx, userID)
}

func (s *FavouritesService) Collections(ctx context.Context, userID int) ([]*models.Collection, error) {
	return s.users.GetFavouriteCollections(ctx, userID)
}
