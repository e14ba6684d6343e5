package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"realworldblog/internal/blog/domain/entities"
	sessionPort "realworldblog/internal/blog/ports/session"
	"realworldblog/pkg/db/redis"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodLoad   = "load"
	LogMethodSave   = "save"
	LogMethodDelete = "delete"

	ErrorFailedToLoad   = "failed to load session from redis"
	ErrorFailedToSave   = "failed to save session to redis"
	ErrorFailedToDelete = "failed to delete session from redis"
	ErrorFailedToDecode = "failed to decode stored session"
	ErrorFailedToEncode = "failed to encode session"
)

// RedisRepository хранит сессии в Redis под ключами prefix+sid.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

var _ sessionPort.Repository = (*RedisRepository)(nil)

// NewRedisRepository создает хранилище сессий поверх клиента Redis.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

// Load читает сессию по идентификатору.
func (r *RedisRepository) Load(ctx context.Context, sid string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLoad))

	raw, err := r.client.Get(ctx, r.key(sid))
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, sessionPort.ErrSessionNotFound
	}
	if err != nil {
		log.Error(ctx, ErrorFailedToLoad, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToLoad, err)
	}

	var s entities.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}
	return &s, nil
}

// Save записывает сессию. Нулевой ttl означает хранение без срока.
func (r *RedisRepository) Save(ctx context.Context, sid string, s *entities.Session, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSave))

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	if err := r.client.Set(ctx, r.key(sid), payload, ttl); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// Delete удаляет сессию.
func (r *RedisRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Delete(ctx, r.key(sid)); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete, zap.String("method", LogMethodDelete), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) key(sid string) string {
	return r.prefix + sid
}
