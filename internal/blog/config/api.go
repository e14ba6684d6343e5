package config

import (
	"errors"
	"net/url"
	"time"
)

// Ошибки конфигурации внешнего API.
var (
	ErrInvalidBaseURL  = errors.New("api base url must be an absolute http(s) url")
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// APIConfig представляет конфигурацию подключения к внешнему REST API блога.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url" env:"BLOG_API_BASE_URL" env-default:"https://blog-platform.kata.academy/api"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"BLOG_API_REQUEST_TIMEOUT" env-default:"10s"`
	PageSize       int           `yaml:"page_size" env:"BLOG_API_PAGE_SIZE" env-default:"5"`
}

// Validate проверяет адрес API и размер страницы.
func (c *APIConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if c.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	return nil
}
