package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RelationRepository struct {
	db *pgxpool.Pool
}

func NewRelationRepository(db *pgxpool.Pool) *RelationRepository {
	return &RelationRepository{db: db}
}

func (r *RelationRepository) AddRelation(ctx context.Context, rel *models.DocumentRelation) error {
	logger.Log.Info("Создание связи документов (repo)",
		zap.Int("source_id", rel.SourceID), zap.Int("destination_id", rel.DestinationID), zap.String("type", string(rel.RelationType)))
	query := `
	INSERT INTO document_relation (source_document_id, destination_document_id, relation_type, confirmed)
	VALUES ($1, $2, $3, $4)`
	_, err := querier(ctx, r.db).Exec(ctx, query, rel.SourceID, rel.DestinationID, rel.RelationType, rel.Confirmed)
	if err != nil {
		logger.Log.Error("Ошибка создания связи (repo)", zap.Error(err))
	}
	return err
}

func (r *RelationRepository) RemoveRelation(ctx context.Context, sourceID, destinationID int) error {
	query := `DELETE FROM document_relation WHERE source_document_id = $1 AND destination_document_id = $2`
	_, err := querier(ctx, r.db).Exec(ctx, query, sourceID, destinationID)
	if err != nil {
		logger.Log.Error("Ошибка удаления связи (repo)", zap.Error(err))
	}
	return err
}

func (r *RelationRepository) UpdateRelationType(ctx context.Context, sourceID, destinationID int, newType models.RelationType) error {
	query := `UPDATE document_relation SET relation_type = $1 WHERE source_document_id = $2 AND destination_document_id = $3`
	_, err := querier(ctx, r.db).Exec(ctx, query, newType, sourceID, destinationID)
	if err != nil {
		logger.Log.Error("Ошибка смены типа связи (repo)", zap.Error(err))
	}
	return err
}

func (r *RelationRepository) SetConfirmed(ctx context.Context, sourceID, destinationID int, confirmed bool) error {
	query := `UPDATE document_relation SET confirmed = $1 WHERE source_document_id = $2 AND destination_document_id = $3`
	_, err := querier(ctx, r.db).Exec(ctx, query, confirmed, sourceID, destinationID)
	if err != nil {
		logger.Log.Error("Ошибка подтверждения связи (repo)", zap.Error(err))
	}
	return err
}

func (r *RelationRepository) GetRelation(ctx context.Context, sourceID, destinationID int) (*models.DocumentRelation, error) {
	query := `
	SELECT source_document_id, destination_document_id, relation_type, confirmed
	FROM document_relation
	WHERE source_document_id = $1 AND destination_document_id = $2`
	var rel models.DocumentRelation
	err := querier(ctx, r.db).QueryRow(ctx, query, sourceID, destinationID).Scan(
		&rel.SourceID, &rel.DestinationID, &rel.RelationType, &rel.Confirmed,
	)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// GetBySource — связи, исходящие из документа; type == "" означает любой тип.
func (r *RelationRepository) GetBySource(ctx context.Context, documentID int, relType models.RelationType) ([]*models.DocumentRelation, error) {
	query := `
	SELECT source_document_id, destination_document_id, relation_type, confirmed
	FROM document_relation
	WHERE source_document_id = $1 AND ($2 = '' OR relation_type = $2)`
	rows, err := querier(ctx, r.db).Query(ctx, query, documentID, relType)
	if err != nil {
		logger.Log.Error("Ошибка получения исходящих связей (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRelations(rows)
}

func (r *RelationRepository) GetByDestination(ctx context.Context, documentID int, relType models.RelationType) ([]*models.DocumentRelation, error) {
	query := `
	SELECT source_document_id, destination_document_id, relation_type, confirmed
	FROM document_relation
	WHERE destination_document_id = $1 AND ($2 = '' OR relation_type = $2)`
	rows, err := querier(ctx, r.db).Query(ctx, query, documentID, relType)
	if err != nil {
		logger.Log.Error("Ошибка получения входящих связей (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRelations(rows)
}

func (r *RelationRepository) GetByDestinationConfirmed(ctx context.Context, documentID int, confirmed bool) ([]*models.DocumentRelation, error) {
	query := `
	SELECT source_document_id, destination_document_id, relation_type, confirmed
	FROM document_relation
	WHERE destination_document_id = $1 AND confirmed = $2`
	rows, err := querier(ctx, r.db).Query(ctx, query, documentID, confirmed)
	if err != nil {
		logger.Log.Error("Ошибка получения связей по подтверждению (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRelations(rows)
}

func scanRelations(rows pgx.Rows) ([]*models.DocumentRelation, error) {
	var out []*models.DocumentRelation
	for rows.Next() {
		var rel models.DocumentRelation
		if err := rows.Scan(&rel.SourceID, &rel.DestinationID, &rel.RelationType, &rel.Confirmed); err != nil {
			logger.Log.Error("Ошибка сканирования связи (repo)", zap.Error(err))
			return nil, err
		}
		out = append(out, &rel)
	}
	return out, rows.Err()
}
