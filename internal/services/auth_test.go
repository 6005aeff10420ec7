package services

import (
	"context"
	"testing"
	"time"

	"archivio/internal/apperrors"
	"archivio/internal/models"
	"archivio/internal/utils"

	"github.com/jackc/pgx/v5"
)

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[int]*models.User
	lastUser *models.User
	nextID   int
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func TestRegisterUser(t *testing.T) {
	repo := &mockUserRepo{users: make(map[int]*models.User)}
	service := NewAuthService(repo)

	user := &models.User{
		Name:    "Тестовый",
		Surname: "Автор",
		Email:   "test@example.com",
	}

	err := service.RegisterUser(context.Background(), user, "secret")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "secret" {
		t.Fatal("пароль сохранён открытым текстом")
	}
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	repo := &mockUserRepo{users: make(map[int]*models.User)}
	service := NewAuthService(repo)

	first := &models.User{Email: "busy@example.com"}
	if err := service.RegisterUser(context.Background(), first, "secret"); err != nil {
		t.Fatalf("первая регистрация не прошла: %v", err)
	}

	second := &models.User{Email: "busy@example.com"}
	err := service.RegisterUser(context.Background(), second, "secret")
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("ожидался Conflict для занятого email, получено: %v", err)
	}
}

func TestLoginUser_Success(t *testing.T) {
	repo := &mockUserRepo{users: make(map[int]*models.User)}
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret")
	repo.users[1] = &models.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: hashed,
	}

	access, refresh, user, err := service.LoginUser(context.Background(), "test@example.com", "secret", "mysecret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("токены не сгенерированы")
	}
	if user == nil || user.Role() != "user" {
		t.Fatalf("ожидалась роль user, пользователь: %+v", user)
	}
}

func TestLoginUser_Fail(t *testing.T) {
	repo := &mockUserRepo{users: make(map[int]*models.User)}
	service := NewAuthService(repo)

	_, _, _, err := service.LoginUser(context.Background(), "unknown@example.com", "pass", "secret", time.Minute, time.Hour)
	if err == nil {
		t.Fatal("ожидалась ошибка при логине несуществующего пользователя")
	}
}

func TestRefreshTokens_RoleReread(t *testing.T) {
	repo := &mockUserRepo{users: make(map[int]*models.User)}
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret")
	repo.users[1] = &models.User{ID: 1, Email: "test@example.com", PasswordHash: hashed}

	_, refresh, _, err := service.LoginUser(context.Background(), "test@example.com", "secret", "mysecret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}

	// Пользователь стал модератором после выдачи токенов.
	repo.users[1].IsModerator = true

	access, _, err := service.RefreshTokens(context.Background(), refresh, "mysecret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("ошибка обновления токенов: %v", err)
	}

	claims, err := utils.ParseToken("mysecret", access)
	if err != nil {
		t.Fatalf("новый access-токен не парсится: %v", err)
	}
	if role, _ := claims["role"].(string); role != "moderator" {
		t.Fatalf("роль должна перечитываться из стора, в claims: %v", claims["role"])
	}
}

func TestRefreshTokens_AccessTokenRejected(t *testing.T) {
	repo := &mockUserRepo{users: make(map[int]*models.User)}
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret")
	repo.users[1] = &models.User{ID: 1, Email: "test@example.com", PasswordHash: hashed}

	access, _, _, err := service.LoginUser(context.Background(), "test@example.com", "secret", "mysecret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}

	_, _, err = service.RefreshTokens(context.Background(), access, "mysecret", time.Minute, time.Hour)
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("access-токен не должен приниматься как refresh, получено: %v", err)
	}
}
