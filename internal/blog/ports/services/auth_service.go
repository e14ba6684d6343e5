package services

import (
	"context"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/domain/entities"
)

// AuthService определяет вход, регистрацию и выход.
type AuthService interface {
	SignIn(ctx context.Context, caller Caller, form dto.SignInForm) (*entities.Session, error)

	SignUp(ctx context.Context, caller Caller, form dto.SignUpForm) (*entities.Session, error)

	SignOut(ctx context.Context, caller Caller) error
}

// ProfileService определяет чтение и изменение профиля текущего пользователя.
type ProfileService interface {
	// Current перечитывает пользователя с сервера и заменяет им сессию.
	Current(ctx context.Context, caller Caller) (*entities.Session, error)

	// Update сохраняет профиль и заменяет сессию ответом сервера.
	Update(ctx context.Context, caller Caller, form dto.ProfileForm) (*entities.Session, error)
}
