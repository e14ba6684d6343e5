package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/app/views"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/internal/blog/ports/services"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceListArticles   = "article service: list articles"
	LogServiceGetArticle     = "article service: get article"
	LogServiceEditDraft      = "article service: edit draft"
	LogServiceCreateArticle  = "article service: create article"
	LogServiceUpdateArticle  = "article service: update article"
	LogServiceDeleteArticle  = "article service: delete article"
	LogServiceToggleFavorite = "article service: toggle favorite"

	ErrorListArticlesFailed   = "failed to list articles"
	ErrorGetArticleFailed     = "failed to get article"
	ErrorEditDraftFailed      = "failed to load article for editing"
	ErrorCreateArticleFailed  = "failed to create article"
	ErrorUpdateArticleFailed  = "failed to update article"
	ErrorDeleteArticleFailed  = "failed to delete article"
	ErrorToggleFavoriteFailed = "failed to toggle favorite"
)

// ArticleServiceImpl реализация интерфейса ArticleService.
type ArticleServiceImpl struct {
	client   apiPort.Client
	store    *session.Store
	forms    *forms.Controller
	tracker  *views.Tracker
	pageSize int
}

// NewArticleService создает новый экземпляр сервиса статей.
func NewArticleService(
	client apiPort.Client,
	store *session.Store,
	controller *forms.Controller,
	tracker *views.Tracker,
	pageSize int,
) services.ArticleService {
	return &ArticleServiceImpl{
		client:   client,
		store:    store,
		forms:    controller,
		tracker:  tracker,
		pageSize: pageSize,
	}
}

// List возвращает страницу списка статей.
func (s *ArticleServiceImpl) List(ctx context.Context, caller services.Caller, number int) (*dto.ArticleListView, error) {
	page := entities.NewPage(number, s.pageSize)
	logger.Log(ctx).Info(ctx, LogServiceListArticles, zap.Int("page", page.Number))

	list, err := views.Fetch(ctx, s.tracker, caller.SessionID, views.ViewList,
		func(ctx context.Context) (*entities.ArticleList, error) {
			articles, total, err := s.client.ListArticles(ctx, caller.Token(), page.Limit(), page.Offset())
			if err != nil {
				return nil, err
			}
			return &entities.ArticleList{Articles: articles, ArticlesCount: total, Page: page}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorListArticlesFailed, dropRejectedSession(ctx, s.store, caller, err))
	}

	return &dto.ArticleListView{
		Articles:      list.Articles,
		ArticlesCount: list.ArticlesCount,
		Page:          page.Number,
		PageSize:      page.Size,
		TotalPages:    page.TotalPages(list.ArticlesCount),
	}, nil
}

// Get возвращает статью с признаком авторства.
func (s *ArticleServiceImpl) Get(ctx context.Context, caller services.Caller, slug string) (*dto.ArticleView, error) {
	logger.Log(ctx).Info(ctx, LogServiceGetArticle, zap.String("slug", slug))

	article, err := views.Fetch(ctx, s.tracker, caller.SessionID, views.ViewArticle,
		func(ctx context.Context) (*entities.Article, error) {
			return s.client.GetArticle(ctx, caller.Token(), slug)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetArticleFailed, dropRejectedSession(ctx, s.store, caller, err))
	}

	return &dto.ArticleView{Article: article, IsAuthor: caller.Session.IsAuthor(article)}, nil
}

// EditDraft возвращает значения формы редактирования для автора статьи.
func (s *ArticleServiceImpl) EditDraft(ctx context.Context, caller services.Caller, slug string) (entities.Draft, error) {
	logger.Log(ctx).Info(ctx, LogServiceEditDraft, zap.String("slug", slug))

	if err := requireSession(caller); err != nil {
		return entities.Draft{}, err
	}

	article, err := views.Fetch(ctx, s.tracker, caller.SessionID, views.ViewEdit,
		func(ctx context.Context) (*entities.Article, error) {
			return s.client.GetArticle(ctx, caller.Token(), slug)
		})
	if err != nil {
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrorEditDraftFailed, dropRejectedSession(ctx, s.store, caller, err))
	}

	if !caller.Session.IsAuthor(article) {
		return entities.Draft{}, entities.ErrNotAuthor
	}
	return entities.NewDraft(article), nil
}

// Create создает статью.
func (s *ArticleServiceImpl) Create(ctx context.Context, caller services.Caller, form dto.ArticleForm) (*entities.Article, error) {
	logger.Log(ctx).Info(ctx, LogServiceCreateArticle)

	if err := requireSession(caller); err != nil {
		return nil, err
	}

	article, err := forms.Submit(ctx, s.forms, caller.SessionID, forms.Article, form,
		func(ctx context.Context, in dto.ArticleForm) (*entities.Article, error) {
			return s.client.CreateArticle(ctx, caller.Token(), forms.DraftOf(in))
		}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCreateArticleFailed, dropRejectedSession(ctx, s.store, caller, err))
	}
	return article, nil
}

// Update сохраняет изменения статьи.
func (s *ArticleServiceImpl) Update(ctx context.Context, caller services.Caller, slug string, form dto.ArticleForm) (*entities.Article, error) {
	logger.Log(ctx).Info(ctx, LogServiceUpdateArticle, zap.String("slug", slug))

	if err := requireSession(caller); err != nil {
		return nil, err
	}

	edit := forms.Article
	edit.Name = forms.FormArticle + ":" + slug

	article, err := forms.Submit(ctx, s.forms, caller.SessionID, edit, form,
		func(ctx context.Context, in dto.ArticleForm) (*entities.Article, error) {
			return s.client.UpdateArticle(ctx, caller.Token(), slug, forms.DraftOf(in))
		}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateArticleFailed, dropRejectedSession(ctx, s.store, caller, err))
	}
	return article, nil
}

// Delete удаляет статью.
func (s *ArticleServiceImpl) Delete(ctx context.Context, caller services.Caller, slug string) error {
	logger.Log(ctx).Info(ctx, LogServiceDeleteArticle, zap.String("slug", slug))

	if err := requireSession(caller); err != nil {
		return err
	}

	if err := s.client.DeleteArticle(ctx, caller.Token(), slug); err != nil {
		return fmt.Errorf("%s: %w", ErrorDeleteArticleFailed, dropRejectedSession(ctx, s.store, caller, err))
	}
	return nil
}

// ToggleFavorite переключает избранное. Метод выбирается по флагу до вызова,
// итоговые значения берутся из ответа сервера.
func (s *ArticleServiceImpl) ToggleFavorite(ctx context.Context, caller services.Caller, slug string, observed *bool) (*dto.FavoriteView, error) {
	log := logger.Log(ctx).With(zap.String("slug", slug))
	log.Info(ctx, LogServiceToggleFavorite)

	if err := requireSession(caller); err != nil {
		return nil, err
	}

	local := &entities.Article{Slug: slug}
	if observed == nil {
		current, err := s.client.GetArticle(ctx, caller.Token(), slug)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorToggleFavoriteFailed, dropRejectedSession(ctx, s.store, caller, err))
		}
		local = current
	} else {
		local.Favorited = *observed
	}

	var (
		server *entities.Article
		err    error
	)
	if local.Favorited {
		server, err = s.client.UnfavoriteArticle(ctx, caller.Token(), slug)
	} else {
		server, err = s.client.FavoriteArticle(ctx, caller.Token(), slug)
	}
	if err != nil {
		log.Warn(ctx, ErrorToggleFavoriteFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorToggleFavoriteFailed, dropRejectedSession(ctx, s.store, caller, err))
	}

	local.ApplyFavorite(server)
	return &dto.FavoriteView{Slug: slug, Favorited: local.Favorited, FavoritesCount: local.FavoritesCount}, nil
}
