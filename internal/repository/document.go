package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DocumentRepository struct {
	db *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type DocumentRepo interface {
	AddDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id int) (*models.Document, error)
	GetDocumentsByAuthor(ctx context.Context, authorID int) ([]*models.Document, error)
	GetAllDocuments(ctx context.Context) ([]*models.Document, error)
	GetDocumentsByStatus(ctx context.Context, status models.DocumentStatus) ([]*models.Document, error)
	UpdateStatus(ctx context.Context, id int, status models.DocumentStatus) error
	DeleteDocument(ctx context.Context, id int) error
	AddTagToDocument(ctx context.Context, documentID int, label string) error
	RemoveTagFromDocument(ctx context.Context, documentID int, label string) error
	GetTagsForDocument(ctx context.Context, documentID int) ([]string, error)
	Search(ctx context.Context, criteria models.DocumentSearchCriteria) ([]*models.Document, error)
}

const documentColumns = `id, title, description, status, format, author_id, file_name, file_path,
	period, document_type, instrument, tonality, compositor, creation_date`

// Сохранение документа
func (r *DocumentRepository) AddDocument(ctx context.Context, doc *models.Document) error {
	logger.Log.Info("Репозиторий: сохранение документа", zap.String("title", doc.Title), zap.Int("author_id", doc.AuthorID))
	query := `
		INSERT INTO document (title, description, status, format, author_id, file_name, file_path,
			period, document_type, instrument, tonality, compositor, creation_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := querier(ctx, r.db).QueryRow(ctx, query,
		doc.Title,
		doc.Description,
		doc.Status,
		doc.Format,
		doc.AuthorID,
		doc.FileName,
		doc.FilePath,
		doc.Period,
		doc.DocumentType,
		doc.Instrument,
		doc.Tonality,
		doc.Compositor,
		doc.CreationDate,
	).Scan(&doc.ID)
	if err != nil {
		logger.Log.Error("Ошибка сохранения документа (repo)", zap.Error(err))
	}
	return err
}

// Получение по ID (вместе с тегами)
func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id int) (*models.Document, error) {
	logger.Log.Debug("Репозиторий: получение документа по ID", zap.Int("doc_id", id))
	query := `SELECT ` + documentColumns + ` FROM document WHERE id = $1`
	var d models.Document
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.Status,
		&d.Format,
		&d.AuthorID,
		&d.FileName,
		&d.FilePath,
		&d.Period,
		&d.DocumentType,
		&d.Instrument,
		&d.Tonality,
		&d.Compositor,
		&d.CreationDate,
	)
	if err != nil {
		return nil, err
	}
	tags, err := r.GetTagsForDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Tags = tags
	return &d, nil
}

func (r *DocumentRepository) GetDocumentsByAuthor(ctx context.Context, authorID int) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM document WHERE author_id = $1 ORDER BY creation_date DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, authorID)
	if err != nil {
		logger.Log.Error("Ошибка получения документов автора (repo)", zap.Int("author_id", authorID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Для админки — все документы
func (r *DocumentRepository) GetAllDocuments(ctx context.Context) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM document ORDER BY creation_date DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения всех документов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (r *DocumentRepository) GetDocumentsByStatus(ctx context.Context, status models.DocumentStatus) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM document WHERE status = $1 ORDER BY creation_date DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, status)
	if err != nil {
		logger.Log.Error("Ошибка получения документов по статусу (repo)", zap.String("status", string(status)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Документы, одобренные конкретным модератором (через publish_request)
func (r *DocumentRepository) GetDocumentsApprovedByModerator(ctx context.Context, moderatorID int) ([]*models.Document, error) {
	query := `
	SELECT DISTINCT d.id, d.title, d.description, d.status, d.format, d.author_id, d.file_name, d.file_path,
		d.period, d.document_type, d.instrument, d.tonality, d.compositor, d.creation_date
	FROM document d
	JOIN publish_request pr ON pr.document_id = d.id
	WHERE pr.moderator_id = $1 AND pr.status = 'APPROVED'
	ORDER BY d.creation_date DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, moderatorID)
	if err != nil {
		logger.Log.Error("Ошибка получения документов модератора (repo)", zap.Int("moderator_id", moderatorID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id int, status models.DocumentStatus) error {
	logger.Log.Info("Репозиторий: смена статуса документа", zap.Int("doc_id", id), zap.String("status", string(status)))
	query := `UPDATE document SET status = $1 WHERE id = $2`
	_, err := querier(ctx, r.db).Exec(ctx, query, status, id)
	if err != nil {
		logger.Log.Error("Ошибка смены статуса документа (repo)", zap.Int("doc_id", id), zap.Error(err))
	}
	return err
}

// Удаление
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id int) error {
	logger.Log.Info("Репозиторий: удаление документа", zap.Int("doc_id", id))
	query := `DELETE FROM document WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления документа (repo)", zap.Int("doc_id", id), zap.Error(err))
	}
	return err
}

func (r *DocumentRepository) AddTagToDocument(ctx context.Context, documentID int, label string) error {
	logger.Log.Info("Репозиторий: привязка тега к документу", zap.Int("doc_id", documentID), zap.String("label", label))
	query := `INSERT INTO document_tag (document_id, tag_label) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := querier(ctx, r.db).Exec(ctx, query, documentID, label)
	if err != nil {
		logger.Log.Error("Ошибка привязки тега (repo)", zap.Int("doc_id", documentID), zap.String("label", label), zap.Error(err))
	}
	return err
}

// Убирается только связь документ-тег, сам тег из каталога не удаляется.
func (r *DocumentRepository) RemoveTagFromDocument(ctx context.Context, documentID int, label string) error {
	logger.Log.Info("Репозиторий: отвязка тега от документа", zap.Int("doc_id", documentID), zap.String("label", label))
	query := `DELETE FROM document_tag WHERE document_id = $1 AND LOWER(TRIM(tag_label)) = LOWER(TRIM($2))`
	_, err := querier(ctx, r.db).Exec(ctx, query, documentID, label)
	if err != nil {
		logger.Log.Error("Ошибка отвязки тега (repo)", zap.Int("doc_id", documentID), zap.String("label", label), zap.Error(err))
	}
	return err
}

func (r *DocumentRepository) GetTagsForDocument(ctx context.Context, documentID int) ([]string, error) {
	query := `SELECT tag_label FROM document_tag WHERE document_id = $1 ORDER BY tag_label`
	rows, err := querier(ctx, r.db).Query(ctx, query, documentID)
	if err != nil {
		logger.Log.Error("Ошибка получения тегов документа (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Search собирает WHERE из заполненных полей критерия.
func (r *DocumentRepository) Search(ctx context.Context, criteria models.DocumentSearchCriteria) ([]*models.Document, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if criteria.Title != "" {
		conds = append(conds, "title ILIKE "+arg("%"+criteria.Title+"%"))
	}
	if criteria.AuthorID != nil {
		conds = append(conds, "author_id = "+arg(*criteria.AuthorID))
	}
	if criteria.Format != "" {
		conds = append(conds, "format = "+arg(criteria.Format))
	}
	if criteria.CreatedAfter != nil {
		conds = append(conds, "creation_date >= "+arg(*criteria.CreatedAfter))
	}
	if criteria.CreatedBefore != nil {
		conds = append(conds, "creation_date <= "+arg(*criteria.CreatedBefore))
	}
	if len(criteria.Tags) > 0 {
		conds = append(conds, `id IN (SELECT document_id FROM document_tag WHERE tag_label = ANY(`+arg(criteria.Tags)+`))`)
	}

	query := `SELECT ` + documentColumns + ` FROM document`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY creation_date DESC"

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка поиска документов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func scanDocuments(rows pgx.Rows) ([]*models.Document, error) {
	var docs []*models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.Description,
			&d.Status,
			&d.Format,
			&d.AuthorID,
			&d.FileName,
			&d.FilePath,
			&d.Period,
			&d.DocumentType,
			&d.Instrument,
			&d.Tonality,
			&d.Compositor,
			&d.CreationDate,
		); err != nil {
			logger.Log.Error("Ошибка сканирования документа (repo)", zap.Error(err))
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}
