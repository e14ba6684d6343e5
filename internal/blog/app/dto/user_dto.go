// Package dto содержит объекты передачи данных: конверты внешнего API и тела запросов/ответов сервиса blog.
package dto

import "encoding/json"

// User - пользователь в ответах внешнего API.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
	Bio      string `json:"bio,omitempty"`
	Image    string `json:"image,omitempty"`
}

// UserEnvelope - конверт {"user": {...}}.
type UserEnvelope struct {
	User User `json:"user"`
}

// LoginRequest - тело POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest - тело POST /users.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest - тело PUT /user. Пароль отправляется только если задан.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	Password string `json:"password,omitempty"`
}

// LoginEnvelope оборачивает LoginRequest.
type LoginEnvelope struct {
	User LoginRequest `json:"user"`
}

// RegisterEnvelope оборачивает RegisterRequest.
type RegisterEnvelope struct {
	User RegisterRequest `json:"user"`
}

// UpdateUserEnvelope оборачивает UpdateUserRequest.
type UpdateUserEnvelope struct {
	User UpdateUserRequest `json:"user"`
}

// ErrorsEnvelope - конверт {"errors": {field: message}}. Сообщение бывает строкой или списком строк.
type ErrorsEnvelope struct {
	Errors map[string]json.RawMessage `json:"errors"`
}
