package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogSubmitInvalid  = "form rejected by local validation"
	LogSubmitRejected = "form rejected by server"
	LogSubmitInFlight = "form submission already in flight"
)

// ErrInFlight возвращается, когда предыдущая отправка той же формы еще не завершена.
var ErrInFlight = errors.New("form submission already in flight")

// ValidationError содержит ошибки полей формы и введенные значения для повторного показа.
type ValidationError struct {
	Form   string
	Fields entities.FieldErrors
	Values map[string]any
	// Err - исходная ошибка сервера, nil для локальной валидации.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form %s is invalid: %v", e.Form, e.Fields.Fields())
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Controller ограничивает отправку каждой формы вкладки одним запросом в полете.
type Controller struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewController создает контроллер отправки форм.
func NewController() *Controller {
	return &Controller{inFlight: make(map[string]struct{})}
}

func (c *Controller) acquire(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[key]; busy {
		return false
	}
	c.inFlight[key] = struct{}{}
	return true
}

func (c *Controller) release(key string) {
	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

// Submit проверяет форму и при успехе выполняет ровно один вызов call.
// Невалидная форма не приводит к сетевому вызову. Ошибки полей от сервера
// накладываются на ошибки формы. apply применяется один раз, только после успеха.
func Submit[F, R any](
	ctx context.Context,
	c *Controller,
	sid string,
	form Form[F],
	input F,
	call func(ctx context.Context, input F) (R, error),
	apply func(ctx context.Context, result R) error,
) (R, error) {
	var zero R
	log := logger.Log(ctx).With(zap.String("form", form.Name))

	errs := form.Validate(input)
	if !errs.Empty() {
		log.Debug(ctx, LogSubmitInvalid, zap.Strings("fields", errs.Fields()))
		return zero, form.invalid(input, errs, nil)
	}

	key := sid + "/" + form.Name
	if !c.acquire(key) {
		log.Info(ctx, LogSubmitInFlight)
		return zero, ErrInFlight
	}
	defer c.release(key)

	result, err := call(ctx, input)
	if err != nil {
		if serverFields, ok := apiPort.FieldsOf(err); ok {
			log.Info(ctx, LogSubmitRejected, zap.Strings("fields", serverFields.Fields()))
			return zero, form.invalid(input, errs.Overlay(serverFields), err)
		}
		return zero, err
	}

	if apply != nil {
		if err := apply(ctx, result); err != nil {
			return zero, err
		}
	}
	return result, nil
}

func (f Form[F]) invalid(input F, errs entities.FieldErrors, cause error) *ValidationError {
	var values map[string]any
	if f.Echo != nil {
		values = f.Echo(input)
	}
	return &ValidationError{Form: f.Name, Fields: errs, Values: values, Err: cause}
}
