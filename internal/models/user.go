package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsModerator  bool      `json:"is_moderator"`
	IsAdmin      bool      `json:"is_admin"`
	NextFileName int       `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role — строковая роль для JWT-claims и middleware.
func (u *User) Role() string {
	switch {
	case u.IsAdmin:
		return "admin"
	case u.IsModerator:
		return "moderator"
	default:
		return "user"
	}
}

type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	Email       *string `json:"email,omitempty"`
	IsModerator *bool   `json:"is_moderator,omitempty"`
	IsAdmin     *bool   `json:"is_admin,omitempty"`
}
