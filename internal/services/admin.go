package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/repository"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AdminService — административные операции. Каждая начинается с проверки
// флага is_admin вызывающего; без прохождения проверки стор не трогается.
type AdminService struct {
	users       *repository.UserRepository
	docs        *repository.DocumentRepository
	collections *repository.CollectionRepository
	comments    *repository.CommentRepository
}

func NewAdminService(
	users *repository.UserRepository,
	docs *repository.DocumentRepository,
	collections *repository.CollectionRepository,
	comments *repository.CommentRepository,
) *AdminService {
	return &AdminService{users: users, docs: docs, collections: collections, comments: comments}
}

func (s *AdminService) requireAdmin(ctx context.Context, userID int) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Forbidden("пользователь не найден")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "ошибка получения пользователя", err)
	}
	if !user.IsAdmin {
		return apperrors.Forbidden("пользователь не администратор")
	}
	return nil
}

func (s *AdminService) SearchUserByID(ctx context.Context, adminID, userID int) (*models.User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("пользователь не найден")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения пользователя", err)
	}
	return user, nil
}

func (s *AdminService) SearchUserByEmail(ctx context.Context, adminID int, email string) (*models.User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("пользователь не найден")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения пользователя", err)
	}
	return user, nil
}

func (s *AdminService) AllUsers(ctx context.Context, adminID int) ([]*models.User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.users.GetAllUsers(ctx)
}

func (s *AdminService) RemoveUser(ctx context.Context, adminID, userID int) error {
	logger.Log.Info("Удаление пользователя (service)", zap.Int("user_id", userID), zap.Int("admin_id", adminID))
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, userID)
}

func (s *AdminService) SetModerator(ctx context.Context, adminID, userID int, isModerator bool) error {
	logger.Log.Info("Назначение модератора (service)", zap.Int("user_id", userID), zap.Bool("is_moderator", isModerator))
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if _, err := s.users.GetUserByID(ctx, userID); errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("пользователь не найден")
	} else if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "ошибка получения пользователя", err)
	}
	return s.users.SetModerator(ctx, userID, isModerator)
}

func (s *AdminService) AllDocuments(ctx context.Context, adminID int) ([]*models.Document, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.docs.GetAllDocuments(ctx)
}

func (s *AdminService) DocumentsByAuthor(ctx context.Context, adminID, authorID int) ([]*models.Document, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.docs.GetDocumentsByAuthor(ctx, authorID)
}

func (s *AdminService) DocumentsByStatus(ctx context.Context, adminID int, status models.DocumentStatus) ([]*models.Document, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.docs.GetDocumentsByStatus(ctx, status)
}

func (s *AdminService) DocumentsApprovedByModerator(ctx context.Context, adminID, moderatorID int) ([]*models.Document, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.docs.GetDocumentsApprovedByModerator(ctx, moderatorID)
}

func (s *AdminService) AllCollections(ctx context.Context, adminID int) ([]*models.Collection, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.collections.GetAllCollections(ctx)
}

func (s *AdminService) DeleteCollection(ctx context.Context, adminID, collectionID int) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	return s.collections.DeleteCollection(ctx, collectionID)
}

func (s *AdminService) RemoveComment(ctx context.Context, adminID, commentID int) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	return s.comments.RemoveComment(ctx, commentID)
}

func (s *AdminService) CommentsByAuthor(ctx context.Context, adminID, authorID int) ([]*models.Comment, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByAuthor(ctx, authorID)
}

func (s *AdminService) CommentsByDocument(ctx context.Context, adminID, documentID int) ([]*models.Comment, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByDocument(ctx, documentID)
}
