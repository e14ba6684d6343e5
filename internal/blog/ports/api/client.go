// Package api определяет порт клиента внешнего REST API блога.
package api

import (
	"context"

	"realworldblog/internal/blog/domain/entities"
)

// UserUpdate - изменяемые поля пользователя. Пустой Password не отправляется.
type UserUpdate struct {
	Username string
	Email    string
	Image    string
	Password string
}

// Client определяет интерфейс для работы с внешним API. Пустой token означает анонимный запрос.
type Client interface {
	ListArticles(ctx context.Context, token string, limit, offset int) ([]entities.Article, int, error)

	GetArticle(ctx context.Context, token, slug string) (*entities.Article, error)

	CreateArticle(ctx context.Context, token string, draft entities.Draft) (*entities.Article, error)

	UpdateArticle(ctx context.Context, token, slug string, draft entities.Draft) (*entities.Article, error)

	DeleteArticle(ctx context.Context, token, slug string) error

	FavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error)

	UnfavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error)

	Login(ctx context.Context, email, password string) (*entities.Session, error)

	Register(ctx context.Context, username, email, password string) (*entities.Session, error)

	CurrentUser(ctx context.Context, token string) (*entities.Session, error)

	UpdateUser(ctx context.Context, token string, update UserUpdate) (*entities.Session, error)
}
