package dto

import "realworldblog/internal/blog/domain/entities"

// Navigate - результат, предписывающий клиенту перейти на маршрут.
type Navigate struct {
	Navigate string       `json:"navigate"`
	User     *SessionUser `json:"user,omitempty"`
}

// FormErrors - ответ на неудачную отправку формы: ошибки полей и введенные значения.
type FormErrors struct {
	Errors entities.FieldErrors `json:"errors"`
	Values map[string]any       `json:"values,omitempty"`
}

// ErrorResponse - ошибка без привязки к полю.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionUser - пользователь сессии без токена.
type SessionUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Image    string `json:"image,omitempty"`
}

// SessionView - состояние шапки блога.
type SessionView struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
}

// FormDescriptor описывает форму экрана.
type FormDescriptor struct {
	Form   string         `json:"form"`
	Fields []string       `json:"fields"`
	Values map[string]any `json:"values,omitempty"`
}

// ArticleListView - страница списка статей.
type ArticleListView struct {
	Articles      []entities.Article `json:"articles"`
	ArticlesCount int                `json:"articlesCount"`
	Page          int                `json:"page"`
	PageSize      int                `json:"pageSize"`
	TotalPages    int                `json:"totalPages"`
}

// ArticleView - страница статьи.
type ArticleView struct {
	Article  *entities.Article `json:"article"`
	IsAuthor bool              `json:"isAuthor"`
}

// FavoriteView - состояние избранного после переключения.
type FavoriteView struct {
	Slug           string `json:"slug"`
	Favorited      bool   `json:"favorited"`
	FavoritesCount int    `json:"favoritesCount"`
}

// NewSessionUser строит представление пользователя без токена.
func NewSessionUser(s *entities.Session) *SessionUser {
	if s == nil {
		return nil
	}
	return &SessionUser{Username: s.Username, Email: s.Email, Image: s.Image}
}
