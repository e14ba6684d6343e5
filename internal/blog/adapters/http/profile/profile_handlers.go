// Package profile содержит HTTP обработчики профиля пользователя.
package profile

import (
	"github.com/gofiber/fiber/v3"

	"realworldblog/internal/blog/adapters/http/middleware"
	"realworldblog/internal/blog/adapters/http/respond"
	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/ports/services"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerGetProfile    = "profile handler: get profile"
	LogHandlerUpdateProfile = "profile handler: update profile"
)

// Handler содержит HTTP обработчики профиля.
type Handler struct {
	profileService services.ProfileService
}

// NewHandler создает новый экземпляр обработчика профиля.
func NewHandler(profileService services.ProfileService) *Handler {
	return &Handler{profileService: profileService}
}

// GetProfile перечитывает пользователя и возвращает значения формы профиля.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerGetProfile)

	user, err := h.profileService.Current(requestCtx, middleware.CallerFrom(ctx))
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}

	return respond.JSON(ctx, dto.FormDescriptor{
		Form:   forms.Profile.Name,
		Fields: forms.Profile.Fields(),
		Values: map[string]any{
			"username": user.Username,
			"email":    user.Email,
			"avatar":   user.Image,
		},
	})
}

// UpdateProfile сохраняет форму профиля.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdateProfile)

	var req dto.ProfileForm
	if err := ctx.Bind().JSON(&req); err != nil {
		return respond.BadRequest(requestCtx, ctx, err)
	}

	user, err := h.profileService.Update(requestCtx, middleware.CallerFrom(ctx), req)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.Navigate(ctx, respond.RouteHome, dto.NewSessionUser(user))
}
