package config

import (
	"fmt"
	"time"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"BLOG_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"BLOG_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"BLOG_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"BLOG_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"BLOG_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"BLOG_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"BLOG_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"BLOG_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"BLOG_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"BLOG_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"BLOG_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *RedisConfig) GetHost() string                  { return c.Host }
func (c *RedisConfig) GetPort() int                     { return c.Port }
func (c *RedisConfig) GetPassword() string              { return c.Password }
func (c *RedisConfig) GetDB() int                       { return c.DB }
func (c *RedisConfig) GetPoolSize() int                 { return c.PoolSize }
func (c *RedisConfig) GetMinIdle() int                  { return c.MinIdle }
func (c *RedisConfig) GetConnectTimeout() time.Duration { return c.ConnectTimeout }
func (c *RedisConfig) GetReadTimeout() time.Duration    { return c.ReadTimeout }
func (c *RedisConfig) GetWriteTimeout() time.Duration   { return c.WriteTimeout }
func (c *RedisConfig) GetIdleTimeout() time.Duration    { return c.IdleTimeout }
func (c *RedisConfig) GetMaxConnLifetime() time.Duration {
	return c.MaxConnLifetime
}
