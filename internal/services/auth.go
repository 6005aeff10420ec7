package services

import (
	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/utils"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("email", input.Email))
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(plainPassword) == "" {
		return apperrors.Validation("email и пароль обязательны")
	}
	exists, err := s.repo.IsEmailTaken(ctx, input.Email)
	if err != nil {
		logger.Log.Error("Ошибка проверки email", zap.Error(err))
		return apperrors.Wrap(apperrors.KindInternal, "ошибка проверки email", err)
	}
	if exists {
		return apperrors.Conflict("адрес электронной почты уже зарегистрирован")
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return apperrors.Wrap(apperrors.KindInternal, "ошибка хеширования пароля", err)
	}

	input.PasswordHash = hashed

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return apperrors.Wrap(apperrors.KindInternal, "ошибка создания пользователя", err)
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("email", input.Email))
	return nil
}

func (s *AuthService) LoginUser(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, *models.User, error) {
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("email", email))
		return "", "", nil, apperrors.NotFound("пользователь не найден")
	}
	if err != nil {
		return "", "", nil, apperrors.Wrap(apperrors.KindInternal, "ошибка получения пользователя", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("email", email))
		return "", "", nil, apperrors.Forbidden("неверный пароль")
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Role(), accessTTL, "access")
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return "", "", nil, apperrors.Wrap(apperrors.KindInternal, "ошибка генерации токена", err)
	}

	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Role(), refreshTTL, "refresh")
	if err != nil {
		logger.Log.Error("Ошибка генерации refresh-токена", zap.Error(err))
		return "", "", nil, apperrors.Wrap(apperrors.KindInternal, "ошибка генерации токена", err)
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("email", email))
	return accessToken, refreshToken, user, nil
}

// RefreshTokens проверяет refresh-токен и выдаёт новую пару.
func (s *AuthService) RefreshTokens(
	ctx context.Context,
	refreshToken, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, error) {
	claims, err := utils.ParseToken(jwtSecret, refreshToken)
	if err != nil {
		return "", "", apperrors.Forbidden("неверный или просроченный refresh-токен")
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != "refresh" {
		return "", "", apperrors.Forbidden("ожидался refresh-токен")
	}
	userIDf, ok := claims["user_id"].(float64)
	if !ok {
		return "", "", apperrors.Forbidden("недопустимый payload токена")
	}

	// Роль перечитывается из стора: флаги могли смениться после выдачи токена.
	user, err := s.repo.GetUserByID(ctx, int(userIDf))
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", apperrors.Forbidden("пользователь не найден")
	}
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.KindInternal, "ошибка получения пользователя", err)
	}

	access, err := utils.GenerateToken(jwtSecret, user.ID, user.Role(), accessTTL, "access")
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.KindInternal, "ошибка генерации токена", err)
	}
	refresh, err := utils.GenerateToken(jwtSecret, user.ID, user.Role(), refreshTTL, "refresh")
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.KindInternal, "ошибка генерации токена", err)
	}
	return access, refresh, nil
}
