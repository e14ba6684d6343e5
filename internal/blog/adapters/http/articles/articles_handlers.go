// Package articles содержит HTTP обработчики списка, просмотра и редактирования статей.
package articles

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"realworldblog/internal/blog/adapters/http/middleware"
	"realworldblog/internal/blog/adapters/http/respond"
	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/domain/entities"
	"realworldblog/internal/blog/ports/services"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListArticles   = "articles handler: list articles"
	LogHandlerGetArticle     = "articles handler: get article"
	LogHandlerNewArticleForm = "articles handler: new article form"
	LogHandlerEditForm       = "articles handler: edit article form"
	LogHandlerCreateArticle  = "articles handler: create article"
	LogHandlerUpdateArticle  = "articles handler: update article"
	LogHandlerDeleteArticle  = "articles handler: delete article"
	LogHandlerFavorite       = "articles handler: toggle favorite"

	paramSlug = "slug"
	queryPage = "page"
)

// Handler содержит HTTP обработчики статей.
type Handler struct {
	articleService services.ArticleService
}

// NewHandler создает новый экземпляр обработчика статей.
func NewHandler(articleService services.ArticleService) *Handler {
	return &Handler{articleService: articleService}
}

// ListArticles возвращает страницу списка. Неверный номер страницы считается первой страницей.
func (h *Handler) ListArticles(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := strconv.Atoi(ctx.Query(queryPage))
	if err != nil || page < 1 {
		page = 1
	}
	logger.Log(requestCtx).Info(requestCtx, LogHandlerListArticles, zap.Int("page", page))

	view, err := h.articleService.List(requestCtx, middleware.CallerFrom(ctx), page)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.JSON(ctx, view)
}

// GetArticle возвращает статью.
func (h *Handler) GetArticle(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	slug := ctx.Params(paramSlug)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerGetArticle, zap.String("slug", slug))

	view, err := h.articleService.Get(requestCtx, middleware.CallerFrom(ctx), slug)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.JSON(ctx, view)
}

// NewArticleForm описывает пустую форму статьи.
func (h *Handler) NewArticleForm(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerNewArticleForm)

	return respond.JSON(ctx, articleDescriptor(entities.EmptyDraft()))
}

// EditArticleForm возвращает форму редактирования. Не автор перенаправляется на главную.
func (h *Handler) EditArticleForm(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	slug := ctx.Params(paramSlug)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerEditForm, zap.String("slug", slug))

	draft, err := h.articleService.EditDraft(requestCtx, middleware.CallerFrom(ctx), slug)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.JSON(ctx, articleDescriptor(draft))
}

// CreateArticle создает статью и переходит на ее страницу.
func (h *Handler) CreateArticle(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCreateArticle)

	var req dto.ArticleForm
	if err := ctx.Bind().JSON(&req); err != nil {
		return respond.BadRequest(requestCtx, ctx, err)
	}

	article, err := h.articleService.Create(requestCtx, middleware.CallerFrom(ctx), req)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.Navigate(ctx, articleRoute(article.Slug), nil)
}

// UpdateArticle сохраняет статью и переходит на ее страницу.
func (h *Handler) UpdateArticle(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	slug := ctx.Params(paramSlug)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdateArticle, zap.String("slug", slug))

	var req dto.ArticleForm
	if err := ctx.Bind().JSON(&req); err != nil {
		return respond.BadRequest(requestCtx, ctx, err)
	}

	article, err := h.articleService.Update(requestCtx, middleware.CallerFrom(ctx), slug, req)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.Navigate(ctx, articleRoute(article.Slug), nil)
}

// DeleteArticle удаляет статью и переходит на главную.
func (h *Handler) DeleteArticle(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	slug := ctx.Params(paramSlug)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDeleteArticle, zap.String("slug", slug))

	if err := h.articleService.Delete(requestCtx, middleware.CallerFrom(ctx), slug); err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.Navigate(ctx, respond.RouteHome, nil)
}

// ToggleFavorite переключает избранное. Тело {"favorited": bool} необязательно.
func (h *Handler) ToggleFavorite(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	slug := ctx.Params(paramSlug)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerFavorite, zap.String("slug", slug))

	var req dto.FavoriteRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().JSON(&req); err != nil {
			return respond.BadRequest(requestCtx, ctx, err)
		}
	}

	view, err := h.articleService.ToggleFavorite(requestCtx, middleware.CallerFrom(ctx), slug, req.Favorited)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.JSON(ctx, view)
}

func articleDescriptor(draft entities.Draft) dto.FormDescriptor {
	return dto.FormDescriptor{
		Form:   forms.Article.Name,
		Fields: forms.Article.Fields(),
		Values: map[string]any{
			"title":       draft.Title,
			"description": draft.Description,
			"body":        draft.Body,
			"tagList":     draft.TagList,
		},
	}
}

func articleRoute(slug string) string {
	return "/articles/" + slug
}
