package config

import (
	"errors"
	"time"
)

// Хранилища сессий.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// ErrUnknownSessionBackend возвращается при неизвестном типе хранилища сессий.
var ErrUnknownSessionBackend = errors.New("unknown session backend")

// SessionConfig представляет конфигурацию хранилища сессий.
type SessionConfig struct {
	Backend      string        `yaml:"backend" env:"BLOG_SESSION_BACKEND" env-default:"memory"`
	CookieName   string        `yaml:"cookie_name" env:"BLOG_SESSION_COOKIE_NAME" env-default:"blog_session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"BLOG_SESSION_COOKIE_SECURE" env-default:"false"`
	TTL          time.Duration `yaml:"ttl" env:"BLOG_SESSION_TTL" env-default:"24h"`
	KeyPrefix    string        `yaml:"key_prefix" env:"BLOG_SESSION_KEY_PREFIX" env-default:"session:"`
}

// Validate проверяет тип хранилища.
func (c *SessionConfig) Validate() error {
	switch c.Backend {
	case SessionBackendMemory, SessionBackendRedis:
		return nil
	default:
		return ErrUnknownSessionBackend
	}
}
