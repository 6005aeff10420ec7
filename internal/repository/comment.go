package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) AddComment(ctx context.Context, c *models.Comment) error {
	logger.Log.Info("Создание комментария (repo)", zap.Int("author_id", c.AuthorID), zap.Int("doc_id", c.DocumentID))
	query := `INSERT INTO comment (text, author_id, document_id, date) VALUES ($1, $2, $3, $4) RETURNING id`
	err := querier(ctx, r.db).QueryRow(ctx, query, c.Text, c.AuthorID, c.DocumentID, c.Date).Scan(&c.ID)
	if err != nil {
		logger.Log.Error("Ошибка создания комментария (repo)", zap.Error(err))
	}
	return err
}

func (r *CommentRepository) RemoveComment(ctx context.Context, id int) error {
	logger.Log.Info("Удаление комментария (repo)", zap.Int("comment_id", id))
	query := `DELETE FROM comment WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления комментария (repo)", zap.Int("comment_id", id), zap.Error(err))
	}
	return err
}

func (r *CommentRepository) GetCommentsByAuthor(ctx context.Context, authorID int) ([]*models.Comment, error) {
	query := `SELECT id, text, author_id, document_id, date FROM comment WHERE author_id = $1 ORDER BY date DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, authorID)
	if err != nil {
		logger.Log.Error("Ошибка получения комментариев автора (repo)", zap.Int("author_id", authorID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func (r *CommentRepository) GetCommentsByDocument(ctx context.Context, documentID int) ([]*models.Comment, error) {
	query := `SELECT id, text, author_id, document_id, date FROM comment WHERE document_id = $1 ORDER BY date ASC`
	rows, err := querier(ctx, r.db).Query(ctx, query, documentID)
	if err != nil {
		logger.Log.Error("Ошибка получения комментариев документа (repo)", zap.Int("doc_id", documentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func scanComments(rows pgx.Rows) ([]*models.Comment, error) {
	var out []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.DocumentID, &c.Date); err != nil {
			logger.Log.Error("Ошибка сканирования комментария (repo)", zap.Error(err))
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
