// Package services содержит реализации сервисов blog поверх внешнего API и хранилища сессий.
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/internal/blog/ports/services"
	"realworldblog/pkg/logger"
)

// LogTokenRejected пишется, когда API отклонил токен сессии.
const LogTokenRejected = "api rejected session token, clearing session"

// dropRejectedSession очищает сессию, если API ответил 401 на авторизованный вызов.
// Такая ошибка превращается в entities.ErrSessionExpired.
func dropRejectedSession(ctx context.Context, store *session.Store, caller services.Caller, err error) error {
	if err == nil || !caller.Authenticated() || !apiPort.IsKind(err, apiPort.KindUnauthorized) {
		return err
	}

	logger.Log(ctx).Warn(ctx, LogTokenRejected, zap.String("username", caller.Session.Username))
	if clearErr := store.Clear(ctx, caller.SessionID); clearErr != nil {
		return fmt.Errorf("%w: %w", clearErr, err)
	}
	return fmt.Errorf("%w: %w", entities.ErrSessionExpired, err)
}

func requireSession(caller services.Caller) error {
	if !caller.Authenticated() {
		return entities.ErrNoSession
	}
	return nil
}

// keepToken сохраняет прежний токен, если сервер не вернул новый.
func keepToken(next *entities.Session, previous *entities.Session) *entities.Session {
	if next.Token == "" && previous != nil {
		next.Token = previous.Token
	}
	return next
}
