package services

import (
	"context"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/domain/entities"
)

// ArticleService определяет операции со статьями.
type ArticleService interface {
	// List возвращает страницу списка. Номер страницы начинается с 1.
	List(ctx context.Context, caller Caller, page int) (*dto.ArticleListView, error)

	Get(ctx context.Context, caller Caller, slug string) (*dto.ArticleView, error)

	// EditDraft возвращает значения формы редактирования. Не автору возвращается entities.ErrNotAuthor.
	EditDraft(ctx context.Context, caller Caller, slug string) (entities.Draft, error)

	Create(ctx context.Context, caller Caller, form dto.ArticleForm) (*entities.Article, error)

	Update(ctx context.Context, caller Caller, slug string, form dto.ArticleForm) (*entities.Article, error)

	Delete(ctx context.Context, caller Caller, slug string) error

	// ToggleFavorite переключает избранное. observed - флаг, который видел клиент; nil - перечитать статью.
	ToggleFavorite(ctx context.Context, caller Caller, slug string, observed *bool) (*dto.FavoriteView, error)
}
