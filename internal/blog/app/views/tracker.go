// Package views отслеживает поколения запросов данных для экранов: последний запрос побеждает.
package views

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"realworldblog/internal/blog/app/session"
	"realworldblog/pkg/logger"
)

// Экраны, данные которых загружаются через трекер.
const (
	ViewList    = "list"
	ViewArticle = "article"
	ViewEdit    = "edit"
	ViewProfile = "profile"
)

// LogFetchSuperseded пишется, когда результат устаревшего запроса отброшен.
const LogFetchSuperseded = "view fetch superseded"

// ErrSuperseded возвращается для результата запроса, который перестал быть актуальным.
var ErrSuperseded = errors.New("request superseded")

type ticketKey struct {
	sid  string
	view string
}

// Ticket - право одного запроса на публикацию результата.
type Ticket struct {
	tracker *Tracker
	key     ticketKey
	cancel  context.CancelFunc
}

// Tracker хранит актуальный запрос для каждой пары вкладка/экран.
type Tracker struct {
	mu      sync.Mutex
	current map[ticketKey]*Ticket
}

// NewTracker создает пустой трекер.
func NewTracker() *Tracker {
	return &Tracker{current: make(map[ticketKey]*Ticket)}
}

// Begin регистрирует новый запрос экрана view для вкладки sid и отменяет предыдущий.
// Возвращенный контекст отменяется, как только запрос перестает быть актуальным.
func (t *Tracker) Begin(ctx context.Context, sid, view string) (*Ticket, context.Context) {
	fetchCtx, cancel := context.WithCancel(ctx)
	ticket := &Ticket{tracker: t, key: ticketKey{sid: sid, view: view}, cancel: cancel}

	t.mu.Lock()
	previous := t.current[ticket.key]
	t.current[ticket.key] = ticket
	t.mu.Unlock()

	if previous != nil {
		previous.cancel()
	}
	return ticket, fetchCtx
}

// Finish завершает запрос. Для неактуального запроса результат err заменяется на ErrSuperseded.
func (tk *Ticket) Finish(err error) error {
	t := tk.tracker

	t.mu.Lock()
	current := t.current[tk.key] == tk
	if current {
		delete(t.current, tk.key)
	}
	t.mu.Unlock()

	tk.cancel()

	if !current {
		return ErrSuperseded
	}
	return err
}

// CancelSession отменяет все незавершенные запросы вкладки.
func (t *Tracker) CancelSession(sid string) int {
	t.mu.Lock()
	var canceled []*Ticket
	for key, ticket := range t.current {
		if key.sid == sid {
			canceled = append(canceled, ticket)
			delete(t.current, key)
		}
	}
	t.mu.Unlock()

	for _, ticket := range canceled {
		ticket.cancel()
	}
	return len(canceled)
}

// Observe реагирует на изменение сессии: запросы со старой идентичностью отменяются.
func (t *Tracker) Observe(ctx context.Context, event session.Event) {
	if n := t.CancelSession(event.SessionID); n > 0 {
		logger.Log(ctx).Debug(ctx, LogFetchSuperseded, zap.Int("canceled", n))
	}
}

// Fetch выполняет загрузку данных экрана через трекер.
func Fetch[T any](ctx context.Context, t *Tracker, sid, view string, fn func(ctx context.Context) (T, error)) (T, error) {
	ticket, fetchCtx := t.Begin(ctx, sid, view)

	result, err := fn(fetchCtx)
	if err = ticket.Finish(err); err != nil {
		if errors.Is(err, ErrSuperseded) {
			logger.Log(ctx).Debug(ctx, LogFetchSuperseded, zap.String("view", view))
		}
		var zero T
		return zero, err
	}
	return result, nil
}
