// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"fmt"
	"time"
)

// DefaultValues содержит значения по умолчанию для Redis.
// Значения должны быть синхронизированы с тегами env-default в RedisConfig сервиса blog.
const (
	DefaultHost           = "localhost"
	DefaultPort           = 6379
	DefaultPassword       = ""
	DefaultDB             = 0
	DefaultPoolSize       = 10
	DefaultMinIdle        = 2
	DefaultConnectTimeout = 5 * time.Second
	DefaultTimeout        = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host            string
	Port            int
	Password        string
	DB              int
	PoolSize        int
	MinIdle         int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxConnLifetime time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		Password:       DefaultPassword,
		DB:             DefaultDB,
		PoolSize:       DefaultPoolSize,
		MinIdle:        DefaultMinIdle,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultTimeout,
		WriteTimeout:   DefaultTimeout,
	}
}

// Address возвращает адрес Redis в формате host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServiceConfig представляет конфигурацию Redis, объявленную в сервисе.
type ServiceConfig interface {
	GetHost() string
	GetPort() int
	GetPassword() string
	GetDB() int
	GetPoolSize() int
	GetMinIdle() int
	GetConnectTimeout() time.Duration
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
	GetIdleTimeout() time.Duration
	GetMaxConnLifetime() time.Duration
}

// NewConfigFromServiceConfig создает конфигурацию клиента из конфигурации сервиса.
func NewConfigFromServiceConfig(cfg ServiceConfig) *Config {
	return &Config{
		Host:            cfg.GetHost(),
		Port:            cfg.GetPort(),
		Password:        cfg.GetPassword(),
		DB:              cfg.GetDB(),
		PoolSize:        cfg.GetPoolSize(),
		MinIdle:         cfg.GetMinIdle(),
		ConnectTimeout:  cfg.GetConnectTimeout(),
		ReadTimeout:     cfg.GetReadTimeout(),
		WriteTimeout:    cfg.GetWriteTimeout(),
		IdleTimeout:     cfg.GetIdleTimeout(),
		MaxConnLifetime: cfg.GetMaxConnLifetime(),
	}
}
