// Package http содержит компоненты для HTTP сервера blog.
package http

import (
	"github.com/gofiber/fiber/v3"

	"realworldblog/internal/blog/adapters/http/articles"
	"realworldblog/internal/blog/adapters/http/auth"
	"realworldblog/internal/blog/adapters/http/middleware"
	"realworldblog/internal/blog/adapters/http/profile"
	"realworldblog/internal/blog/adapters/http/respond"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/config"
	"realworldblog/internal/blog/ports/services"
)

// Services - сервисы, обслуживающие маршруты.
type Services struct {
	Auth     services.AuthService
	Profile  services.ProfileService
	Articles services.ArticleService
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, svc Services, store *session.Store, cfg *config.SessionConfig) {
	authHandler := auth.NewHandler(svc.Auth)
	profileHandler := profile.NewHandler(svc.Profile)
	articlesHandler := articles.NewHandler(svc.Articles)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewSessionMiddleware(store, cfg))

	requireSession := middleware.NewRequireSession()

	// Публичные маршруты.
	app.Get("/", articlesHandler.ListArticles)
	app.Get("/articles", articlesHandler.ListArticles)
	app.Get("/articles/:slug", articlesHandler.GetArticle)
	app.Get("/sign-in", authHandler.SignInForm)
	app.Post("/sign-in", authHandler.SignIn)
	app.Get("/sign-up", authHandler.SignUpForm)
	app.Post("/sign-up", authHandler.SignUp)
	app.Post("/logout", authHandler.Logout)
	app.Get("/session", authHandler.Session)

	// Защищенные маршруты.
	app.Get("/profile", requireSession, profileHandler.GetProfile)
	app.Put("/profile", requireSession, profileHandler.UpdateProfile)
	app.Get("/new-article", requireSession, articlesHandler.NewArticleForm)
	app.Post("/new-article", requireSession, articlesHandler.CreateArticle)
	app.Get("/articles/:slug/edit", requireSession, articlesHandler.EditArticleForm)
	app.Put("/articles/:slug/edit", requireSession, articlesHandler.UpdateArticle)
	app.Delete("/articles/:slug", requireSession, articlesHandler.DeleteArticle)
	app.Post("/articles/:slug/favorite", requireSession, articlesHandler.ToggleFavorite)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return respond.Message(c, fiber.StatusNotFound, respond.ErrorRouteNotFound)
	})
}
