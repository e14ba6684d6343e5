// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"realworldblog/internal/blog/ports/services"
)

// Ключи значений запроса в Locals.
const (
	LocalUserContext = "userContext"
	LocalCaller      = "caller"
)

// RequestContext возвращает контекст запроса с логгером и идентификатором запроса.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// CallerFrom возвращает вызывающую сторону, загруженную промежуточным ПО сессии.
func CallerFrom(ctx fiber.Ctx) services.Caller {
	caller, _ := ctx.Locals(LocalCaller).(services.Caller)
	return caller
}
