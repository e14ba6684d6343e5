// Package auth содержит HTTP обработчики входа, регистрации и состояния сессии.
package auth

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
	LogHandlerSignInForm = "auth handler: sign in form"
	LogHandlerSignUpForm = "auth handler: sign up form"
	LogHandlerSignIn     = "auth handler: sign in"
	LogHandlerSignUp     = "auth handler: sign up"
	LogHandlerLogout     = "auth handler: logout"
	LogHandlerSession    = "auth handler: session"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authService services.AuthService
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authService services.AuthService) *Handler {
	return &Handler{authService: authService}
}

// SignInForm описывает форму входа.
func (h *Handler) SignInForm(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSignInForm)

	return respond.JSON(ctx, dto.FormDescriptor{Form: forms.SignIn.Name, Fields: forms.SignIn.Fields()})
}

// SignUpForm описывает форму регистрации.
func (h *Handler) SignUpForm(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSignUpForm)

	return respond.JSON(ctx, dto.FormDescriptor{Form: forms.SignUp.Name, Fields: forms.SignUp.Fields()})
}

// SignIn обрабатывает отправку формы входа.
func (h *Handler) SignIn(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerSignIn)

	var req dto.SignInForm
	if err := ctx.Bind().JSON(&req); err != nil {
		return respond.BadRequest(requestCtx, ctx, err)
	}

	user, err := h.authService.SignIn(requestCtx, middleware.CallerFrom(ctx), req)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.Navigate(ctx, respond.RouteHome, dto.NewSessionUser(user))
}

// SignUp обрабатывает отправку формы регистрации.
func (h *Handler) SignUp(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerSignUp)

	var req dto.SignUpForm
	if err := ctx.Bind().JSON(&req); err != nil {
		return respond.BadRequest(requestCtx, ctx, err)
	}

	user, err := h.authService.SignUp(requestCtx, middleware.CallerFrom(ctx), req)
	if err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.Navigate(ctx, respond.RouteHome, dto.NewSessionUser(user))
}

// Logout очищает сессию вкладки.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogout)

	if err := h.authService.SignOut(requestCtx, middleware.CallerFrom(ctx)); err != nil {
		return respond.Error(requestCtx, ctx, err)
	}
	return respond.Navigate(ctx, respond.RouteHome, nil)
}

// Session возвращает состояние шапки: кто вошел и вошел ли кто-нибудь.
func (h *Handler) Session(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSession)

	caller := middleware.CallerFrom(ctx)
	return respond.JSON(ctx, dto.SessionView{
		Authenticated: caller.Authenticated(),
		User:          dto.NewSessionUser(caller.Session),
	})
}
