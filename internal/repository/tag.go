package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) AddTag(ctx context.Context, tag *models.Tag) error {
	logger.Log.Info("Создание тега (repo)", zap.String("label", tag.Label))
	query := `INSERT INTO tag (tag_label, description) VALUES ($1, $2)`
	_, err := querier(ctx, r.db).Exec(ctx, query, tag.Label, tag.Description)
	if err != nil {
		logger.Log.Error("Ошибка создания тега (repo)", zap.String("label", tag.Label), zap.Error(err))
	}
	return err
}

// FindByLabelNormalized ищет тег без учёта регистра и крайних пробелов.
// Возвращает (nil, nil), если тега нет.
func (r *TagRepository) FindByLabelNormalized(ctx context.Context, label string) (*models.Tag, error) {
	query := `SELECT tag_label, description FROM tag WHERE LOWER(TRIM(tag_label)) = LOWER(TRIM($1))`
	var t models.Tag
	err := querier(ctx, r.db).QueryRow(ctx, query, label).Scan(&t.Label, &t.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Error("Ошибка поиска тега (repo)", zap.String("label", label), zap.Error(err))
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) GetAllTags(ctx context.Context) ([]*models.Tag, error) {
	query := `SELECT tag_label, description FROM tag ORDER BY tag_label`
	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения тегов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.Label, &t.Description); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}
