package config

import "time"

// ResilienceConfig представляет настройки circuit breaker и повторов чтения.
type ResilienceConfig struct {
	BreakerErrorThreshold   int           `yaml:"breaker_error_threshold" env:"BLOG_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	BreakerTimeout          time.Duration `yaml:"breaker_timeout" env:"BLOG_BREAKER_TIMEOUT" env-default:"10s"`
	BreakerSuccessThreshold int           `yaml:"breaker_success_threshold" env:"BLOG_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
	ReadMaxAttempts         int           `yaml:"read_max_attempts" env:"BLOG_READ_MAX_ATTEMPTS" env-default:"3"`
	ReadInitialBackoff      time.Duration `yaml:"read_initial_backoff" env:"BLOG_READ_INITIAL_BACKOFF" env-default:"100ms"`
	ReadMaxBackoff          time.Duration `yaml:"read_max_backoff" env:"BLOG_READ_MAX_BACKOFF" env-default:"1s"`
}
