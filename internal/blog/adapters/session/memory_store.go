// Package session содержит реализации хранилища сессий: в памяти процесса и в Redis.
package session

import (
	"context"
	"sync"
	"time"

	"realworldblog/internal/blog/domain/entities"
	sessionPort "realworldblog/internal/blog/ports/session"
)

type memoryEntry struct {
	session  entities.Session
	deadline time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.deadline.IsZero() && !now.Before(e.deadline)
}

// MemoryRepository хранит сессии в памяти процесса. Состояние теряется при перезапуске.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ sessionPort.Repository = (*MemoryRepository)(nil)

// NewMemoryRepository создает пустое хранилище в памяти.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Load возвращает копию сохраненной сессии.
func (r *MemoryRepository) Load(_ context.Context, sid string) (*entities.Session, error) {
	r.mu.RLock()
	entry, ok := r.entries[sid]
	r.mu.RUnlock()

	if !ok {
		return nil, sessionPort.ErrSessionNotFound
	}
	if entry.expired(r.now()) {
		r.mu.Lock()
		if current, still := r.entries[sid]; still && current.deadline.Equal(entry.deadline) {
			delete(r.entries, sid)
		}
		r.mu.Unlock()
		return nil, sessionPort.ErrSessionNotFound
	}

	s := entry.session
	return &s, nil
}

// Save сохраняет копию сессии. Нулевой ttl означает хранение без срока.
// Заодно удаляются истекшие сессии вкладок, которые больше не обращаются к хранилищу.
func (r *MemoryRepository) Save(_ context.Context, sid string, s *entities.Session, ttl time.Duration) error {
	now := r.now()
	entry := memoryEntry{session: *s}
	if ttl > 0 {
		entry.deadline = now.Add(ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, e := range r.entries {
		if e.expired(now) {
			delete(r.entries, key)
		}
	}
	r.entries[sid] = entry
	return nil
}

// Len возвращает число хранимых сессий, включая еще не удаленные истекшие.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Delete удаляет сессию. Удаление отсутствующей сессии не является ошибкой.
func (r *MemoryRepository) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	delete(r.entries, sid)
	r.mu.Unlock()
	return nil
}

// Close очищает хранилище.
func (r *MemoryRepository) Close() error {
	r.mu.Lock()
	clear(r.entries)
	r.mu.Unlock()
	return nil
}
