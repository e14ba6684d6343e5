package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"realworldblog/internal/blog/adapters/http/respond"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/config"
	"realworldblog/internal/blog/ports/services"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionIssued      = "session id issued"
	LogSessionLoadFailure = "failed to load session"
	LogSessionRequired    = "route requires a session"

	ErrorSessionUnavailable = "session store unavailable"
)

// NewSessionMiddleware создает промежуточное ПО, которое читает или выдает идентификатор вкладки
// в cookie и загружает текущую сессию.
func NewSessionMiddleware(store *session.Store, cfg *config.SessionConfig) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx)

		sid := ctx.Cookies(cfg.CookieName)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
			log.Debug(requestCtx, LogSessionIssued)
		}

		current, _, err := store.Get(requestCtx, sid)
		if err != nil {
			log.Error(requestCtx, LogSessionLoadFailure, zap.Error(err))
			return respond.Message(ctx, fiber.StatusServiceUnavailable, ErrorSessionUnavailable)
		}

		ctx.Locals(LocalCaller, services.Caller{SessionID: sid, Session: current})
		return ctx.Next()
	}
}

// NewRequireSession создает промежуточное ПО защищенных маршрутов.
// Без сессии клиент перенаправляется на вход, обработчик не вызывается.
func NewRequireSession() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if CallerFrom(ctx).Authenticated() {
			return ctx.Next()
		}

		requestCtx := RequestContext(ctx)
		logger.Log(requestCtx).Info(requestCtx, LogSessionRequired, zap.String("path", ctx.Path()))

		return respond.Navigate(ctx, respond.RouteSignIn, nil)
	}
}
