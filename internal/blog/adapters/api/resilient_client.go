package api

import (
	"context"
	"errors"

	"realworldblog/internal/blog/config"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/internal/blog/resilience"
)

// ResilienceName - имя Circuit Breaker внешнего API в логах.
const ResilienceName = "blog-api"

// ResilientClient оборачивает api.Client: все вызовы идут через Circuit Breaker,
// чтения дополнительно повторяются при сетевых сбоях.
type ResilientClient struct {
	next       apiPort.Client
	resilience *resilience.ServiceResilience
}

var _ apiPort.Client = (*ResilientClient)(nil)

// NewResilientClient создает отказоустойчивую обертку клиента.
func NewResilientClient(next apiPort.Client, cfg *config.ResilienceConfig) *ResilientClient {
	breaker := resilience.CircuitBreakerConfig{
		ErrorThreshold:   cfg.BreakerErrorThreshold,
		Timeout:          cfg.BreakerTimeout,
		SuccessThreshold: cfg.BreakerSuccessThreshold,
		IsFailure:        isDependencyFailure,
	}
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.ReadMaxAttempts
	retry.InitialBackoff = cfg.ReadInitialBackoff
	retry.MaxBackoff = cfg.ReadMaxBackoff
	retry.ShouldRetry = IsTransient

	return &ResilientClient{
		next:       next,
		resilience: resilience.NewServiceResilience(ResilienceName, breaker, retry),
	}
}

// State возвращает состояние Circuit Breaker.
func (c *ResilientClient) State() resilience.CircuitState {
	return c.resilience.State()
}

type articlePage struct {
	articles []entities.Article
	total    int
}

// ListArticles получает страницу статей с повторами.
func (c *ResilientClient) ListArticles(ctx context.Context, token string, limit, offset int) ([]entities.Article, int, error) {
	page, err := read(ctx, c, LogMethodListArticles, func() (articlePage, error) {
		articles, total, err := c.next.ListArticles(ctx, token, limit, offset)
		return articlePage{articles: articles, total: total}, err
	})
	return page.articles, page.total, err
}

// GetArticle получает статью с повторами.
func (c *ResilientClient) GetArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	return read(ctx, c, LogMethodGetArticle, func() (*entities.Article, error) {
		return c.next.GetArticle(ctx, token, slug)
	})
}

// CreateArticle создает статью без повторов.
func (c *ResilientClient) CreateArticle(ctx context.Context, token string, draft entities.Draft) (*entities.Article, error) {
	return write(ctx, c, LogMethodCreateArticle, func() (*entities.Article, error) {
		return c.next.CreateArticle(ctx, token, draft)
	})
}

// UpdateArticle обновляет статью без повторов.
func (c *ResilientClient) UpdateArticle(ctx context.Context, token, slug string, draft entities.Draft) (*entities.Article, error) {
	return write(ctx, c, LogMethodUpdateArticle, func() (*entities.Article, error) {
		return c.next.UpdateArticle(ctx, token, slug, draft)
	})
}

// DeleteArticle удаляет статью без повторов.
func (c *ResilientClient) DeleteArticle(ctx context.Context, token, slug string) error {
	_, err := write(ctx, c, LogMethodDeleteArticle, func() (struct{}, error) {
		return struct{}{}, c.next.DeleteArticle(ctx, token, slug)
	})
	return err
}

// FavoriteArticle добавляет статью в избранное без повторов.
func (c *ResilientClient) FavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	return write(ctx, c, LogMethodFavoriteArticle, func() (*entities.Article, error) {
		return c.next.FavoriteArticle(ctx, token, slug)
	})
}

// UnfavoriteArticle убирает статью из избранного без повторов.
func (c *ResilientClient) UnfavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	return write(ctx, c, LogMethodUnfavoriteArticle, func() (*entities.Article, error) {
		return c.next.UnfavoriteArticle(ctx, token, slug)
	})
}

// Login выполняет вход без повторов.
func (c *ResilientClient) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	return write(ctx, c, LogMethodLogin, func() (*entities.Session, error) {
		return c.next.Login(ctx, email, password)
	})
}

// Register регистрирует пользователя без повторов.
func (c *ResilientClient) Register(ctx context.Context, username, email, password string) (*entities.Session, error) {
	return write(ctx, c, LogMethodRegister, func() (*entities.Session, error) {
		return c.next.Register(ctx, username, email, password)
	})
}

// CurrentUser получает пользователя с повторами.
func (c *ResilientClient) CurrentUser(ctx context.Context, token string) (*entities.Session, error) {
	return read(ctx, c, LogMethodCurrentUser, func() (*entities.Session, error) {
		return c.next.CurrentUser(ctx, token)
	})
}

// UpdateUser обновляет профиль без повторов.
func (c *ResilientClient) UpdateUser(ctx context.Context, token string, update apiPort.UserUpdate) (*entities.Session, error) {
	return write(ctx, c, LogMethodUpdateUser, func() (*entities.Session, error) {
		return c.next.UpdateUser(ctx, token, update)
	})
}

func read[T any](ctx context.Context, c *ResilientClient, op string, fn func() (T, error)) (T, error) {
	result, err := resilience.Read(ctx, c.resilience, op, fn)
	return result, wrapCircuitOpen(op, err)
}

func write[T any](ctx context.Context, c *ResilientClient, op string, fn func() (T, error)) (T, error) {
	result, err := resilience.Write(ctx, c.resilience, op, fn)
	return result, wrapCircuitOpen(op, err)
}

func wrapCircuitOpen(op string, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return &apiPort.Error{Kind: apiPort.KindTransport, Op: op, Err: err}
	}
	return err
}

func isDependencyFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return apiPort.IsUnavailable(err)
}
