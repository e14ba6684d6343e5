// Package respond формирует ответы BFF: модели представления, переходы и ошибки.
package respond

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/views"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/pkg/logger"
)

// Маршруты переходов.
const (
	RouteHome   = "/"
	RouteSignIn = "/sign-in"
)

// Сообщения об ошибках в ответах.
const (
	ErrorInvalidRequest     = "invalid request"
	ErrorNotFound           = "not found"
	ErrorForbidden          = "forbidden"
	ErrorUpstream           = "blog api unavailable"
	ErrorInternal           = "Internal Server Error"
	ErrorRouteNotFound      = "Route not found"
	ErrorFailedServeRequest = "failed to serve request"
	ErrorRequestCanceled    = "request canceled"
)

// StatusClientClosedRequest - клиент закрыл соединение до ответа.
const StatusClientClosedRequest = 499

// JSON отправляет модель представления с кодом 200.
func JSON(c fiber.Ctx, body any) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// Navigate предписывает клиенту перейти на маршрут to.
func Navigate(c fiber.Ctx, to string, user *dto.SessionUser) error {
	c.Set(fiber.HeaderLocation, to)
	return c.Status(fiber.StatusSeeOther).JSON(dto.Navigate{Navigate: to, User: user})
}

// Message отправляет ошибку без привязки к полю.
func Message(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}

// BadRequest отвечает на тело запроса, которое не удалось разобрать.
func BadRequest(ctx context.Context, c fiber.Ctx, err error) error {
	logger.Log(ctx).Warn(ctx, ErrorInvalidRequest, zap.Error(err))
	return Message(c, fiber.StatusBadRequest, ErrorInvalidRequest)
}

// Error сопоставляет ошибку сервиса ответу.
func Error(ctx context.Context, c fiber.Ctx, err error) error {
	log := logger.Log(ctx)

	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FormErrors{Errors: verr.Fields, Values: verr.Values})
	case errors.Is(err, forms.ErrInFlight):
		return Message(c, fiber.StatusConflict, forms.ErrInFlight.Error())
	case errors.Is(err, views.ErrSuperseded):
		return Message(c, fiber.StatusConflict, views.ErrSuperseded.Error())
	case errors.Is(err, context.Canceled):
		log.Info(ctx, ErrorRequestCanceled, zap.Error(err))
		return Message(c, StatusClientClosedRequest, ErrorRequestCanceled)
	case errors.Is(err, entities.ErrNoSession), errors.Is(err, entities.ErrSessionExpired):
		return Navigate(c, RouteSignIn, nil)
	case errors.Is(err, entities.ErrNotAuthor):
		return Navigate(c, RouteHome, nil)
	}

	kind, ok := apiPort.KindOf(err)
	if !ok {
		log.Error(ctx, ErrorFailedServeRequest, zap.Error(err))
		return Message(c, fiber.StatusInternalServerError, ErrorInternal)
	}

	switch kind {
	case apiPort.KindNotFound:
		return Message(c, fiber.StatusNotFound, ErrorNotFound)
	case apiPort.KindForbidden:
		return Message(c, fiber.StatusForbidden, ErrorForbidden)
	case apiPort.KindUnauthorized:
		return Navigate(c, RouteSignIn, nil)
	case apiPort.KindValidation:
		fields, _ := apiPort.FieldsOf(err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FormErrors{Errors: fields})
	default:
		log.Error(ctx, ErrorFailedServeRequest, zap.Error(err))
		return Message(c, fiber.StatusBadGateway, ErrorUpstream)
	}
}
