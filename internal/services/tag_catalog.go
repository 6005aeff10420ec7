package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/models"
	"archivio/internal/repository"
	"context"
	"strings"
)

// TagCatalogService — чтение каталога тегов и административный посев.
// Обычный путь появления тега — одобренная заявка в TagWorkflowService.
type TagCatalogService struct {
	tags *repository.TagRepository
}

func NewTagCatalogService(tags *repository.TagRepository) *TagCatalogService {
	return &TagCatalogService{tags: tags}
}

func (s *TagCatalogService) AllTags(ctx context.Context) ([]*models.Tag, error) {
	return s.tags.GetAllTags(ctx)
}

func (s *TagCatalogService) FindByLabel(ctx context.Context, label string) (*models.Tag, error) {
	tag, err := s.tags.FindByLabelNormalized(ctx, label)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка поиска тега", err)
	}
	if tag == nil {
		return nil, apperrors.NotFound("тег не найден")
	}
	return tag, nil
}

// SeedTag — прямое создание тега (административный путь).
func (s *TagCatalogService) SeedTag(ctx context.Context, label, description string) (*models.Tag, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return nil, apperrors.Validation("label тега не может быть пустым")
	}
	existing, err := s.tags.FindByLabelNormalized(ctx, trimmed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка поиска тега", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("тег с таким label уже существует")
	}
	tag := &models.Tag{Label: trimmed, Description: description}
	if err := s.tags.AddTag(ctx, tag); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка создания тега", err)
	}
	return tag, nil
}
