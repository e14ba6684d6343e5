package services

import (
	"context"
	"fmt"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/app/views"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/internal/blog/ports/services"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceCurrentProfile = "profile service: current"
	LogServiceUpdateProfile  = "profile service: update"

	ErrorCurrentProfileFailed = "failed to fetch profile"
	ErrorUpdateProfileFailed  = "failed to update profile"
)

// ProfileServiceImpl реализация интерфейса ProfileService.
type ProfileServiceImpl struct {
	client  apiPort.Client
	store   *session.Store
	forms   *forms.Controller
	tracker *views.Tracker
}

// NewProfileService создает новый экземпляр сервиса профиля.
func NewProfileService(client apiPort.Client, store *session.Store, controller *forms.Controller, tracker *views.Tracker) services.ProfileService {
	return &ProfileServiceImpl{client: client, store: store, forms: controller, tracker: tracker}
}

// Current перечитывает пользователя с сервера и заменяет им сессию.
func (s *ProfileServiceImpl) Current(ctx context.Context, caller services.Caller) (*entities.Session, error) {
	logger.Log(ctx).Info(ctx, LogServiceCurrentProfile)

	if err := requireSession(caller); err != nil {
		return nil, err
	}

	user, err := views.Fetch(ctx, s.tracker, caller.SessionID, views.ViewProfile,
		func(ctx context.Context) (*entities.Session, error) {
			return s.client.CurrentUser(ctx, caller.Token())
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCurrentProfileFailed, dropRejectedSession(ctx, s.store, caller, err))
	}

	user = keepToken(user, caller.Session)
	if err := s.store.Set(ctx, caller.SessionID, user); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCurrentProfileFailed, err)
	}
	return user, nil
}

// Update сохраняет профиль. Пароль отправляется, только если он задан.
func (s *ProfileServiceImpl) Update(ctx context.Context, caller services.Caller, form dto.ProfileForm) (*entities.Session, error) {
	logger.Log(ctx).Info(ctx, LogServiceUpdateProfile)

	if err := requireSession(caller); err != nil {
		return nil, err
	}

	result, err := forms.Submit(ctx, s.forms, caller.SessionID, forms.Profile, form,
		func(ctx context.Context, in dto.ProfileForm) (*entities.Session, error) {
			return s.client.UpdateUser(ctx, caller.Token(), apiPort.UserUpdate{
				Username: in.Username,
				Email:    in.Email,
				Image:    in.Avatar,
				Password: in.Password,
			})
		},
		func(ctx context.Context, user *entities.Session) error {
			return s.store.Set(ctx, caller.SessionID, keepToken(user, caller.Session))
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateProfileFailed, dropRejectedSession(ctx, s.store, caller, err))
	}
	return result, nil
}
