package api

import (
	"errors"
	"fmt"
	"net/http"

	"realworldblog/internal/blog/domain/entities"
)

// Kind классифицирует неуспешный результат вызова API.
type Kind string

// Виды ошибок API.
const (
	KindTransport    Kind = "transport"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server"
)

// Error - единообразная ошибка вызова API.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Fields entities.FieldErrors
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindForStatus сопоставляет неуспешный HTTP-статус виду ошибки.
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// KindOf возвращает вид ошибки API, если err ее содержит.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

// IsKind сообщает, является ли err ошибкой API вида kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// FieldsOf возвращает ошибки полей из тела ответа API при любом статусе.
// Вид ошибки при этом сохраняется, например для сброса сессии на 401.
func FieldsOf(err error) (entities.FieldErrors, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Fields, true
	}
	return nil, false
}

// IsUnavailable сообщает, что отказ вызван недоступностью сервера, а не содержимым запроса.
func IsUnavailable(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == KindTransport || k == KindServer)
}
