package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CollectionRepository struct {
	db *pgxpool.Pool
}

func NewCollectionRepository(db *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) AddCollection(ctx context.Context, c *models.Collection) error {
	logger.Log.Info("Создание коллекции (repo)", zap.String("name", c.Name), zap.Int("owner_id", c.OwnerID))
	query := `INSERT INTO collection (name, description, owner_id) VALUES ($1, $2, $3) RETURNING id`
	err := querier(ctx, r.db).QueryRow(ctx, query, c.Name, c.Description, c.OwnerID).Scan(&c.ID)
	if err != nil {
		logger.Log.Error("Ошибка создания коллекции (repo)", zap.Error(err))
	}
	return err
}

func (r *CollectionRepository) DeleteCollection(ctx context.Context, id int) error {
	logger.Log.Info("Удаление коллекции (repo)", zap.Int("collection_id", id))
	query := `DELETE FROM collection WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления коллекции (repo)", zap.Int("collection_id", id), zap.Error(err))
	}
	return err
}

func (r *CollectionRepository) GetCollectionByID(ctx context.Context, id int) (*models.Collection, error) {
	query := `SELECT id, name, description, owner_id FROM collection WHERE id = $1`
	var c models.Collection
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionRepository) GetCollectionsByUser(ctx context.Context, userID int) ([]*models.Collection, error) {
	query := `SELECT id, name, description, owner_id FROM collection WHERE owner_id = $1 ORDER BY id`
	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		logger.Log.Error("Ошибка получения коллекций пользователя (repo)", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []*models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CollectionRepository) GetAllCollections(ctx context.Context) ([]*models.Collection, error) {
	query := `SELECT id, name, description, owner_id FROM collection ORDER BY id`
	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения всех коллекций (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []*models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CollectionRepository) AddDocumentToCollection(ctx context.Context, documentID, collectionID int) error {
	query := `INSERT INTO collection_document (collection_id, document_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := querier(ctx, r.db).Exec(ctx, query, collectionID, documentID)
	if err != nil {
		logger.Log.Error("Ошибка добавления документа в коллекцию (repo)",
			zap.Int("doc_id", documentID), zap.Int("collection_id", collectionID), zap.Error(err))
	}
	return err
}

func (r *CollectionRepository) RemoveDocumentFromCollection(ctx context.Context, documentID, collectionID int) error {
	query := `DELETE FROM collection_document WHERE collection_id = $1 AND document_id = $2`
	_, err := querier(ctx, r.db).Exec(ctx, query, collectionID, documentID)
	if err != nil {
		logger.Log.Error("Ошибка удаления документа из коллекции (repo)",
			zap.Int("doc_id", documentID), zap.Int("collection_id", collectionID), zap.Error(err))
	}
	return err
}

func (r *CollectionRepository) GetDocumentsByCollection(ctx context.Context, collectionID int) ([]*models.Document, error) {
	query := `
	SELECT d.id, d.title, d.description, d.status, d.format, d.author_id, d.file_name, d.file_path,
	       d.period, d.document_type, d.instrument, d.tonality, d.compositor, d.creation_date
	FROM document d
	JOIN collection_document cd ON cd.document_id = d.id
	WHERE cd.collection_id = $1
	ORDER BY d.creation_date DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, collectionID)
	if err != nil {
		logger.Log.Error("Ошибка получения документов коллекции (repo)", zap.Int("collection_id", collectionID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}
