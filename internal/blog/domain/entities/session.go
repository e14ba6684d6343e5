// Package entities содержит сущности домена клиента блога.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена сессии.
var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
	ErrEmptyToken     = errors.New("session token cannot be empty")
)

// Session представляет текущего аутентифицированного пользователя вкладки.
type Session struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Image     string    `json:"image,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Validate проверяет, что сессия пригодна для авторизованных запросов.
func (s *Session) Validate() error {
	if s.Token == "" {
		return ErrEmptyToken
	}
	return nil
}

// Expired сообщает, истек ли срок действия сессии на момент now.
// Нулевой ExpiresAt означает отсутствие ограничения.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// IsAuthor сообщает, является ли пользователь сессии автором статьи.
func (s *Session) IsAuthor(a *Article) bool {
	return s != nil && a != nil && s.Username != "" && s.Username == a.Author.Username
}
