package dto

import "time"

// Profile - автор статьи во внешнем API.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio,omitempty"`
	Image     string `json:"image,omitempty"`
	Following bool   `json:"following"`
}

// Article - статья во внешнем API.
type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// ArticleEnvelope - конверт {"article": {...}}.
type ArticleEnvelope struct {
	Article Article `json:"article"`
}

// ArticlesEnvelope - ответ GET /articles.
type ArticlesEnvelope struct {
	Articles      []Article `json:"articles"`
	ArticlesCount int       `json:"articlesCount"`
}

// ArticleInput - редактируемые поля статьи для POST/PUT.
type ArticleInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

// ArticleInputEnvelope оборачивает ArticleInput.
type ArticleInputEnvelope struct {
	Article ArticleInput `json:"article"`
}
