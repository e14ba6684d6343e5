package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/internal/blog/ports/services"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceSignIn  = "auth service: sign in"
	LogServiceSignUp  = "auth service: sign up"
	LogServiceSignOut = "auth service: sign out"

	ErrorSignInFailed  = "sign in failed"
	ErrorSignUpFailed  = "sign up failed"
	ErrorSignOutFailed = "sign out failed"
)

// AuthServiceImpl реализация интерфейса AuthService.
type AuthServiceImpl struct {
	client apiPort.Client
	store  *session.Store
	forms  *forms.Controller
}

// NewAuthService создает новый экземпляр сервиса авторизации.
func NewAuthService(client apiPort.Client, store *session.Store, controller *forms.Controller) services.AuthService {
	return &AuthServiceImpl{client: client, store: store, forms: controller}
}

// SignIn выполняет вход и устанавливает сессию вкладки.
func (s *AuthServiceImpl) SignIn(ctx context.Context, caller services.Caller, form dto.SignInForm) (*entities.Session, error) {
	logger.Log(ctx).Info(ctx, LogServiceSignIn)

	result, err := forms.Submit(ctx, s.forms, caller.SessionID, forms.SignIn, form,
		func(ctx context.Context, in dto.SignInForm) (*entities.Session, error) {
			return s.client.Login(ctx, in.Email, in.Password)
		},
		s.establish(caller))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorSignInFailed, err)
	}
	return result, nil
}

// SignUp регистрирует пользователя и устанавливает сессию вкладки.
func (s *AuthServiceImpl) SignUp(ctx context.Context, caller services.Caller, form dto.SignUpForm) (*entities.Session, error) {
	logger.Log(ctx).Info(ctx, LogServiceSignUp)

	result, err := forms.Submit(ctx, s.forms, caller.SessionID, forms.SignUp, form,
		func(ctx context.Context, in dto.SignUpForm) (*entities.Session, error) {
			return s.client.Register(ctx, in.Username, in.Email, in.Password)
		},
		s.establish(caller))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorSignUpFailed, err)
	}
	return result, nil
}

// SignOut очищает сессию вкладки.
func (s *AuthServiceImpl) SignOut(ctx context.Context, caller services.Caller) error {
	logger.Log(ctx).Info(ctx, LogServiceSignOut)

	if err := s.store.Clear(ctx, caller.SessionID); err != nil {
		logger.Log(ctx).Error(ctx, ErrorSignOutFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorSignOutFailed, err)
	}
	return nil
}

func (s *AuthServiceImpl) establish(caller services.Caller) func(context.Context, *entities.Session) error {
	return func(ctx context.Context, user *entities.Session) error {
		return s.store.Set(ctx, caller.SessionID, user)
	}
}
