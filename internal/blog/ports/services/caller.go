// Package services определяет интерфейсы сервисов blog.
package services

import "realworldblog/internal/blog/domain/entities"

// Caller - вкладка, от имени которой выполняется операция.
type Caller struct {
	SessionID string
	Session   *entities.Session
}

// Token возвращает токен сессии или пустую строку для анонимной вкладки.
func (c Caller) Token() string {
	if c.Session == nil {
		return ""
	}
	return c.Session.Token
}

// Authenticated сообщает, есть ли у вкладки активная сессия.
func (c Caller) Authenticated() bool {
	return c.Session != nil && c.Session.Token != ""
}
