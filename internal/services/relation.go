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

// RelationService — направленные связи между документами.
// Связь создаёт автор исходного документа; подтверждает автор документа-назначения.
type RelationService struct {
	relations *repository.RelationRepository
	docs      *repository.DocumentRepository
}

func NewRelationService(relations *repository.RelationRepository, docs *repository.DocumentRepository) *RelationService {
	return &RelationService{relations: relations, docs: docs}
}

func (s *RelationService) document(ctx context.Context, id int) (*models.Document, error) {
	doc, err := s.docs.GetDocumentByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("документ не найден")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения документа", err)
	}
	return doc, nil
}

func (s *RelationService) AddRelation(ctx context.Context, userID, sourceID, destinationID int, relType models.RelationType) error {
	logger.Log.Info("Создание связи (service)", zap.Int("source_id", sourceID), zap.Int("destination_id", destinationID))
	if sourceID == destinationID {
		return apperrors.Validation("документ не может ссылаться сам на себя")
	}
	if relType == "" {
		return apperrors.Validation("тип связи обязателен")
	}

	source, err := s.document(ctx, sourceID)
	if err != nil {
		return err
	}
	if source.AuthorID != userID {
		return apperrors.Forbidden("вы не автор исходного документа")
	}
	if _, err := s.document(ctx, destinationID); err != nil {
		return err
	}

	if existing, err := s.relations.GetRelation(ctx, sourceID, destinationID); err == nil && existing != nil {
		return apperrors.Conflict("связь между этими документами уже существует")
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrap(apperrors.KindInternal, "ошибка проверки связи", err)
	}

	rel := &models.DocumentRelation{
		SourceID:      sourceID,
		DestinationID: destinationID,
		RelationType:  relType,
		Confirmed:     false, // подтверждает автор документа-назначения
	}
	if err := s.relations.AddRelation(ctx, rel); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "ошибка создания связи", err)
	}
	return nil
}

func (s *RelationService) RemoveRelation(ctx context.Context, userID, sourceID, destinationID int) error {
	source, err := s.document(ctx, sourceID)
	if err != nil {
		return err
	}
	if source.AuthorID != userID {
		return apperrors.Forbidden("вы не автор исходного документа")
	}
	return s.relations.RemoveRelation(ctx, sourceID, destinationID)
}

func (s *RelationService) UpdateRelationType(ctx context.Context, userID, sourceID, destinationID int, newType models.RelationType) error {
	if newType == "" {
		return apperrors.Validation("тип связи обязателен")
	}
	source, err := s.document(ctx, sourceID)
	if err != nil {
		return err
	}
	if source.AuthorID != userID {
		return apperrors.Forbidden("вы не автор исходного документа")
	}
	return s.relations.UpdateRelationType(ctx, sourceID, destinationID, newType)
}

// ConfirmRelation — входящую связь подтверждает автор документа-назначения.
func (s *RelationService) ConfirmRelation(ctx context.Context, userID, sourceID, destinationID int, confirmed bool) error {
	destination, err := s.document(ctx, destinationID)
	if err != nil {
		return err
	}
	if destination.AuthorID != userID {
		return apperrors.Forbidden("вы не автор документа-назначения")
	}
	return s.relations.SetConfirmed(ctx, sourceID, destinationID, confirmed)
}

func (s *RelationService) SourceRelations(ctx context.Context, documentID int, relType models.RelationType) ([]*models.DocumentRelation, error) {
	return s.relations.GetBySource(ctx, documentID, relType)
}

func (s *RelationService) DestinationRelations(ctx context.Context, documentID int, relType models.RelationType) ([]*models.DocumentRelation, error) {
	return s.relations.GetByDestination(ctx, documentID, relType)
}

func (s *RelationService) DestinationRelationsByConfirm(ctx context.Context, documentID int, confirmed bool) ([]*models.DocumentRelation, error) {
	return s.relations.GetByDestinationConfirmed(ctx, documentID, confirmed)
}
