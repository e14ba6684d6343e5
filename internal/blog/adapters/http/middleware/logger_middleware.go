package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"realworldblog/pkg/logger"
)

// NewLoggerMiddleware создает промежуточное ПО, которое назначает идентификатор запроса
// и логирует начало и завершение запроса.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(logger.HeaderRequestID))
		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
		)
		requestCtx = logger.NewContext(requestCtx, log)

		requestID, _ := logger.GetRequestID(requestCtx)
		ctx.Set(logger.HeaderRequestID, requestID)
		ctx.Locals(LocalUserContext, requestCtx)

		log.Debug(requestCtx, "request started", zap.String("ip", ctx.IP()))

		err := ctx.Next()

		fields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Error(requestCtx, "request failed", append(fields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, "request completed", fields...)
		return nil
	}
}
