// Package session определяет порт хранилища сессий.
package session

import (
	"context"
	"errors"
	"time"

	"realworldblog/internal/blog/domain/entities"
)

// ErrSessionNotFound возвращается, когда для идентификатора нет сохраненной сессии.
var ErrSessionNotFound = errors.New("session not found")

// Repository определяет интерфейс для хранения сессий по идентификатору вкладки.
type Repository interface {
	Load(ctx context.Context, sid string) (*entities.Session, error)

	Save(ctx context.Context, sid string, s *entities.Session, ttl time.Duration) error

	Delete(ctx context.Context, sid string) error

	Close() error
}
