package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PublishRequestRepository struct {
	db *pgxpool.Pool
}

func NewPublishRequestRepository(db *pgxpool.Pool) *PublishRequestRepository {
	return &PublishRequestRepository{db: db}
}

const publishRequestColumns = `id, status, COALESCE(motivation, ''), date_request, date_result, document_id, moderator_id`

func (r *PublishRequestRepository) AddRequest(ctx context.Context, req *models.PublishRequest) error {
	logger.Log.Info("Создание заявки на публикацию (repo)", zap.Int("doc_id", req.DocumentID))
	query := `
	INSERT INTO publish_request (document_id, status, motivation, date_request)
	VALUES ($1, $2, NULLIF($3, ''), $4)
	RETURNING id`
	err := querier(ctx, r.db).QueryRow(ctx, query,
		req.DocumentID,
		req.Status,
		req.Motivation,
		req.DateRequest,
	).Scan(&req.ID)
	if err != nil {
		logger.Log.Error("Ошибка создания заявки на публикацию (repo)", zap.Int("doc_id", req.DocumentID), zap.Error(err))
	}
	return err
}

// GetPendingByDocument возвращает (nil, nil), если PENDING-заявки на документ нет.
func (r *PublishRequestRepository) GetPendingByDocument(ctx context.Context, documentID int) (*models.PublishRequest, error) {
	query := `SELECT ` + publishRequestColumns + ` FROM publish_request WHERE document_id = $1 AND status = $2`
	req, err := scanPublishRequest(querier(ctx, r.db).QueryRow(ctx, query, documentID, models.RequestPending))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Error("Ошибка поиска pending-заявки на публикацию (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return nil, err
	}
	return req, nil
}

func (r *PublishRequestRepository) GetByStatus(ctx context.Context, status models.RequestStatus) ([]*models.PublishRequest, error) {
	query := `SELECT ` + publishRequestColumns + ` FROM publish_request WHERE status = $1 ORDER BY date_request ASC`
	rows, err := querier(ctx, r.db).Query(ctx, query, status)
	if err != nil {
		logger.Log.Error("Ошибка получения заявок на публикацию (repo)", zap.String("status", string(status)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanPublishRequests(rows)
}

func (r *PublishRequestRepository) GetByModerator(ctx context.Context, moderatorID int) ([]*models.PublishRequest, error) {
	query := `SELECT ` + publishRequestColumns + ` FROM publish_request WHERE moderator_id = $1 ORDER BY date_result DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, moderatorID)
	if err != nil {
		logger.Log.Error("Ошибка получения истории модератора (repo)", zap.Int("moderator_id", moderatorID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanPublishRequests(rows)
}

func (r *PublishRequestRepository) GetByAuthor(ctx context.Context, authorID int) ([]*models.PublishRequest, error) {
	query := `
	SELECT pr.id, pr.status, COALESCE(pr.motivation, ''), pr.date_request, pr.date_result, pr.document_id, pr.moderator_id
	FROM publish_request pr
	JOIN document d ON d.id = pr.document_id
	WHERE d.author_id = $1
	ORDER BY pr.date_request DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, authorID)
	if err != nil {
		logger.Log.Error("Ошибка получения заявок автора на публикацию (repo)", zap.Int("author_id", authorID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanPublishRequests(rows)
}

// UpdateStatusByDocument решает PENDING-заявку на документ.
func (r *PublishRequestRepository) UpdateStatusByDocument(ctx context.Context, documentID, moderatorID int, status models.RequestStatus, dateResult time.Time) error {
	logger.Log.Info("Решение заявки на публикацию (repo)",
		zap.Int("doc_id", documentID), zap.String("status", string(status)), zap.Int("moderator_id", moderatorID))
	query := `UPDATE publish_request SET status = $1, date_result = $2, moderator_id = $3 WHERE document_id = $4 AND status = $5`
	tag, err := querier(ctx, r.db).Exec(ctx, query, status, dateResult, moderatorID, documentID, models.RequestPending)
	if err != nil {
		logger.Log.Error("Ошибка решения заявки на публикацию (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		logger.Log.Warn("Решение заявки на публикацию не затронуло строк (repo)", zap.Int("doc_id", documentID))
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PublishRequestRepository) Remove(ctx context.Context, documentID int) error {
	query := `DELETE FROM publish_request WHERE document_id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, documentID)
	if err != nil {
		logger.Log.Error("Ошибка удаления заявки на публикацию (repo)", zap.Int("doc_id", documentID), zap.Error(err))
	}
	return err
}

func scanPublishRequest(row pgx.Row) (*models.PublishRequest, error) {
	var req models.PublishRequest
	err := row.Scan(
		&req.ID,
		&req.Status,
		&req.Motivation,
		&req.DateRequest,
		&req.DateResult,
		&req.DocumentID,
		&req.ModeratorID,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func scanPublishRequests(rows pgx.Rows) ([]*models.PublishRequest, error) {
	var out []*models.PublishRequest
	for rows.Next() {
		req, err := scanPublishRequest(rows)
		if err != nil {
			logger.Log.Error("Ошибка сканирования заявки на публикацию (repo)", zap.Error(err))
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
