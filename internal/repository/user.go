package repository

import (
	"archivio/internal/logger"
	"archivio/internal/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("email", user.Email))
	query := `
	INSERT INTO users (name, surname, email, password_hash, is_moderator, is_admin)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`
	return querier(ctx, r.db).QueryRow(ctx, query,
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		user.IsModerator,
		user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.Int("user_id", id))
	query := `SELECT id, name, surname, email, password_hash, is_moderator, is_admin, next_file_name, created_at
	FROM users
	WHERE id = $1`

	var user models.User
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&user.IsModerator,
		&user.IsAdmin,
		&user.NextFileName,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", email))
	query := `SELECT id, name, surname, email, password_hash, is_moderator, is_admin, next_file_name, created_at
	FROM users
	WHERE email = $1`

	var user models.User
	err := querier(ctx, r.db).QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&user.IsModerator,
		&user.IsAdmin,
		&user.NextFileName,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, name, surname, email, password_hash, is_moderator, is_admin, next_file_name, created_at
	FROM users ORDER BY id`
	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения всех пользователей (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.IsModerator, &u.IsAdmin, &u.NextFileName, &u.CreatedAt); err != nil {
			logger.Log.Error("Ошибка сканирования пользователя (repo)", zap.Error(err))
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetModerators(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, name, surname, email, password_hash, is_moderator, is_admin, next_file_name, created_at
	FROM users WHERE is_moderator = true ORDER BY id`
	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения модераторов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.IsModerator, &u.IsAdmin, &u.NextFileName, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	logger.Log.Info("Удаление пользователя (repo)", zap.Int("user_id", id))
	query := `DELETE FROM users WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления пользователя (repo)", zap.Int("user_id", id), zap.Error(err))
	}
	return err
}

func (r *UserRepository) SetModerator(ctx context.Context, id int, isModerator bool) error {
	logger.Log.Info("Смена флага модератора (repo)", zap.Int("user_id", id), zap.Bool("is_moderator", isModerator))
	query := `UPDATE users SET is_moderator = $1 WHERE id = $2`
	_, err := querier(ctx, r.db).Exec(ctx, query, isModerator, id)
	if err != nil {
		logger.Log.Error("Ошибка смены флага модератора (repo)", zap.Int("user_id", id), zap.Error(err))
	}
	return err
}

// NextFileName атомарно увеличивает счётчик и возвращает его прежнее значение.
// Из него собираются имена файлов в хранилище.
func (r *UserRepository) NextFileName(ctx context.Context, userID int) (int, error) {
	query := `UPDATE users SET next_file_name = next_file_name + 1 WHERE id = $1 RETURNING next_file_name - 1`
	var n int
	err := querier(ctx, r.db).QueryRow(ctx, query, userID).Scan(&n)
	if err != nil {
		logger.Log.Error("Ошибка инкремента счётчика файлов (repo)", zap.Int("user_id", userID), zap.Error(err))
	}
	return n, err
}

func (r *UserRepository) AddFavouriteDocument(ctx context.Context, userID, documentID int) error {
	query := `INSERT INTO favourite_document (user_id, document_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := querier(ctx, r.db).Exec(ctx, query, userID, documentID)
	if err != nil {
		logger.Log.Error("Ошибка добавления документа в избранное (repo)", zap.Int("user_id", userID), zap.Int("doc_id", documentID), zap.Error(err))
	}
	return err
}

func (r *UserRepository) RemoveFavouriteDocument(ctx context.Context, userID, documentID int) error {
	query := `DELETE FROM favourite_document WHERE user_id = $1 AND document_id = $2`
	_, err := querier(ctx, r.db).Exec(ctx, query, userID, documentID)
	if err != nil {
		logger.Log.Error("Ошибка удаления документа из избранного (repo)", zap.Int("user_id", userID), zap.Int("doc_id", documentID), zap.Error(err))
	}
	return err
}

func (r *UserRepository) AddFavouriteCollection(ctx context.Context, userID, collectionID int) error {
	query := `INSERT INTO favourite_collection (user_id, collection_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := querier(ctx, r.db).Exec(ctx, query, userID, collectionID)
	if err != nil {
		logger.Log.Error("Ошибка добавления коллекции в избранное (repo)", zap.Int("user_id", userID), zap.Int("collection_id", collectionID), zap.Error(err))
	}
	return err
}

func (r *UserRepository) RemoveFavouriteCollection(ctx context.Context, userID, collectionID int) error {
	query := `DELETE FROM favourite_collection WHERE user_id = $1 AND collection_id = $2`
	_, err := querier(ctx, r.db).Exec(ctx, query, userID, collectionID)
	if err != nil {
		logger.Log.Error("Ошибка удаления коллекции из избранного (repo)", zap.Int("user_id", userID), zap.Int("collection_id", collectionID), zap.Error(err))
	}
	return err
}

func (r *UserRepository) GetFavouriteDocuments(ctx context.Context, userID int) ([]*models.Document, error) {
	query := `
	SELECT d.id, d.title, d.description, d.status, d.format, d.author_id, d.file_name, d.file_path,
	       d.period, d.document_type, d.instrument, d.tonality, d.compositor, d.creation_date
	FROM document d
	JOIN favourite_document f ON f.document_id = d.id
	WHERE f.user_id = $1
	ORDER BY d.creation_date DESC`
	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		logger.Log.Error("Ошибка получения избранных документов (repo)", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (r *UserRepository) GetFavouriteCollections(ctx context.Context, userID int) ([]*models.Collection, error) {
	query := `
	SELECT c.id, c.name, c.description, c.owner_id
	FROM collection c
	JOIN favourite_collection f ON f.collection_id = c.id
	WHERE f.user_id = $1
	ORDER BY c.id`
	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		logger.Log.Error("Ошибка получения избранных коллекций (repo)", zap.Int("user_id", userID), zap.Error(err))
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
