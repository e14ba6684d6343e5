// Package session содержит хранилище текущей сессии с явным каналом уведомлений.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"realworldblog/internal/blog/domain/entities"
	sessionPort "realworldblog/internal/blog/ports/session"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionSet     = "session set"
	LogSessionCleared = "session cleared"
	LogSessionExpired = "session expired"

	ErrorFailedLoadSession  = "failed to load session"
	ErrorFailedSaveSession  = "failed to save session"
	ErrorFailedClearSession = "failed to clear session"
)

// Event сообщает об изменении сессии. Nil Session означает, что сессия очищена.
type Event struct {
	SessionID string
	Session   *entities.Session
}

// Observer получает уведомления об изменениях. Вызывается синхронно после изменения состояния.
type Observer func(ctx context.Context, event Event)

// Store хранит по одной сессии на идентификатор вкладки и уведомляет подписчиков о каждом Set и Clear.
type Store struct {
	repo   sessionPort.Repository
	maxTTL time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// NewStore создает хранилище. maxTTL ограничивает срок жизни сессии сверху.
func NewStore(repo sessionPort.Repository, maxTTL time.Duration) *Store {
	return &Store{
		repo:      repo,
		maxTTL:    maxTTL,
		now:       time.Now,
		observers: make(map[uint64]Observer),
	}
}

// Get возвращает текущую сессию. Истекшая сессия очищается и считается отсутствующей.
func (s *Store) Get(ctx context.Context, sid string) (*entities.Session, bool, error) {
	if sid == "" {
		return nil, false, nil
	}

	current, err := s.repo.Load(ctx, sid)
	if errors.Is(err, sessionPort.ErrSessionNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", ErrorFailedLoadSession, err)
	}

	if current.Expired(s.now()) {
		logger.Log(ctx).Info(ctx, LogSessionExpired, zap.String("username", current.Username))
		if err := s.Clear(ctx, sid); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	return current, true, nil
}

// Set заменяет сессию целиком. Срок жизни берется из claim exp токена, но не больше maxTTL.
func (s *Store) Set(ctx context.Context, sid string, next *entities.Session) error {
	if err := next.Validate(); err != nil {
		return err
	}

	stored := *next
	ttl := s.lifetime(stored.Token)
	if ttl <= 0 {
		return entities.ErrSessionExpired
	}
	stored.ExpiresAt = s.now().Add(ttl)

	if err := s.repo.Save(ctx, sid, &stored, ttl); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedSaveSession, err)
	}

	logger.Log(ctx).Info(ctx, LogSessionSet,
		zap.String("username", stored.Username),
		zap.Time("expires_at", stored.ExpiresAt))

	s.notify(ctx, Event{SessionID: sid, Session: &stored})
	return nil
}

// Clear удаляет сессию. Повторный вызов безопасен.
func (s *Store) Clear(ctx context.Context, sid string) error {
	if err := s.repo.Delete(ctx, sid); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedClearSession, err)
	}

	logger.Log(ctx).Info(ctx, LogSessionCleared)

	s.notify(ctx, Event{SessionID: sid})
	return nil
}

// Subscribe регистрирует наблюдателя и возвращает функцию отписки.
func (s *Store) Subscribe(observer Observer) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify(ctx context.Context, event Event) {
	s.mu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.RUnlock()

	for _, o := range observers {
		o(ctx, event)
	}
}

func (s *Store) lifetime(token string) time.Duration {
	exp, ok := TokenExpiry(token)
	if !ok {
		return s.maxTTL
	}

	ttl := exp.Sub(s.now())
	if s.maxTTL > 0 && ttl > s.maxTTL {
		return s.maxTTL
	}
	return ttl
}

// TokenExpiry читает claim exp из JWT без проверки подписи.
// Токен, не являющийся JWT или без exp, дает ok == false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
