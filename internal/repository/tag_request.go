package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TagRequestRepository struct {
	db *pgxpool.Pool
}

func NewTagRequestRepository(db *pgxpool.Pool) *TagRequestRepository {
	return &TagRequestRepository{db: db}
}

const tagRequestColumns = `id, status, date_request, date_result, document_id, operation,
	COALESCE(existing_tag_label, ''), COALESCE(proposed_label, ''), moderator_id`

// AddRequest сохраняет PENDING-заявку. Пустые label-поля пишутся как NULL,
// чтобы частичный уникальный индекс по pending-дубликатам работал корректно.
func (r *TagRequestRepository) AddRequest(ctx context.Context, req *models.TagChangeRequest) error {
	logger.Log.Info("Создание заявки на изменение тегов (repo)",
		zap.Int("doc_id", req.DocumentID),
		zap.String("operation", string(req.Operation)),
		zap.String("existing", req.ExistingTagLabel),
		zap.String("proposed", req.ProposedLabel),
	)
	query := `
	INSERT INTO tag_change_request (document_id, operation, existing_tag_label, proposed_label, status, date_request)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
	RETURNING id`
	err := querier(ctx, r.db).QueryRow(ctx, query,
		req.DocumentID,
		req.Operation,
		req.ExistingTagLabel,
		req.ProposedLabel,
		req.Status,
		req.DateRequest,
	).Scan(&req.ID)
	if err != nil {
		logger.Log.Error("Ошибка создания заявки на изменение тегов (repo)", zap.Int("doc_id", req.DocumentID), zap.Error(err))
	}
	return err
}

func (r *TagRequestRepository) GetByID(ctx context.Context, id int) (*models.TagChangeRequest, error) {
	query := `SELECT ` + tagRequestColumns + ` FROM tag_change_request WHERE id = $1`
	return scanTagRequest(querier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *TagRequestRepository) GetPending(ctx context.Context) ([]*models.TagChangeRequest, error) {
	query := `SELECT ` + tagRequestColumns + ` FROM tag_change_request WHERE status = $1 ORDER BY date_request ASC`
	rows, err := querier(ctx, r.db).Query(ctx, query, models.RequestPending)
	if err != nil {
		logger.Log.Error("Ошибка получения pending-заявок (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanTagRequests(rows)
}

func (r *TagRequestRepository) GetByModerator(ctx context.Context, moderatorID int) ([]*models.TagChangeRequest, error) {
	query := `SELECT ` + tagRequestColumns + ` FROM tag_change_request WHERE moderator_id = $1 ORDER BY date_result DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, moderatorID)
	if err != nil {
		logger.Log.Error("Ошибка получения заявок модератора (repo)", zap.Int("moderator_id", moderatorID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanTagRequests(rows)
}

// Заявки по документам конкретного автора
func (r *TagRequestRepository) GetByAuthor(ctx context.Context, authorID int) ([]*models.TagChangeRequest, error) {
	query := `
	SELECT r.id, r.status, r.date_request, r.date_result, r.document_id, r.operation,
		COALESCE(r.existing_tag_label, ''), COALESCE(r.proposed_label, ''), r.moderator_id
	FROM tag_change_request r
	JOIN document d ON d.id = r.document_id
	WHERE d.author_id = $1
	ORDER BY r.date_request DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, authorID)
	if err != nil {
		logger.Log.Error("Ошибка получения заявок автора (repo)", zap.Int("author_id", authorID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanTagRequests(rows)
}

func (r *TagRequestRepository) GetByDocument(ctx context.Context, documentID int) ([]*models.TagChangeRequest, error) {
	query := `SELECT ` + tagRequestColumns + ` FROM tag_change_request WHERE document_id = $1 ORDER BY date_request ASC`
	rows, err := querier(ctx, r.db).Query(ctx, query, documentID)
	if err != nil {
		logger.Log.Error("Ошибка получения заявок документа (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanTagRequests(rows)
}

// ExistsPendingDuplicate — есть ли PENDING-заявка с той же тройкой
// (документ, операция, label). Решённые заявки в расчёт не идут.
func (r *TagRequestRepository) ExistsPendingDuplicate(
	ctx context.Context,
	documentID int,
	op models.TagChangeOperation,
	existingTagLabel, proposedLabel string,
) (bool, error) {
	query := `
	SELECT EXISTS(
		SELECT 1 FROM tag_change_request
		WHERE document_id = $1 AND operation = $2 AND status = $3
		AND COALESCE(existing_tag_label, '') = $4
		AND COALESCE(proposed_label, '') = $5
	)`
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx, query,
		documentID, op, models.RequestPending, existingTagLabel, proposedLabel,
	).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки дубликата заявки (repo)",
			zap.Int("doc_id", documentID), zap.String("operation", string(op)), zap.Error(err))
	}
	return exists, err
}

// UpdateStatus переводит заявку в терминальный статус и фиксирует модератора.
func (r *TagRequestRepository) UpdateStatus(ctx context.Context, requestID, moderatorID int, status models.RequestStatus, dateResult time.Time) error {
	logger.Log.Info("Смена статуса заявки на изменение тегов (repo)",
		zap.Int("request_id", requestID), zap.String("status", string(status)), zap.Int("moderator_id", moderatorID))
	query := `UPDATE tag_change_request SET status = $1, date_result = $2, moderator_id = $3 WHERE id = $4`
	tag, err := querier(ctx, r.db).Exec(ctx, query, status, dateResult, moderatorID, requestID)
	if err != nil {
		logger.Log.Error("Ошибка смены статуса заявки (repo)", zap.Int("request_id", requestID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		logger.Log.Warn("Смена статуса заявки не затронула строк (repo)", zap.Int("request_id", requestID))
		return pgx.ErrNoRows
	}
	return nil
}

func scanTagRequest(row pgx.Row) (*models.TagChangeRequest, error) {
	var req models.TagChangeRequest
	err := row.Scan(
		&req.ID,
		&req.Status,
		&req.DateRequest,
		&req.DateResult,
		&req.DocumentID,
		&req.Operation,
		&req.ExistingTagLabel,
		&req.ProposedLabel,
		&req.ModeratorID,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func scanTagRequests(rows pgx.Rows) ([]*models.TagChangeRequest, error) {
	var out []*models.TagChangeRequest
	for rows.Next() {
		req, err := scanTagRequest(rows)
		if err != nil {
			logger.Log.Error("Ошибка сканирования заявки (repo)", zap.Error(err))
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
