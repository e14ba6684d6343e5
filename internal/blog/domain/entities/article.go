package entities

import (
	"errors"
	"strings"
	"time"
)

// MaxTags - максимальное число тегов у статьи.
const MaxTags = 10

// ErrNotAuthor возвращается при попытке изменить чужую статью.
var ErrNotAuthor = errors.New("only the author can change the article")

// Author представляет автора статьи.
type Author struct {
	Username string `json:"username"`
	Image    string `json:"image,omitempty"`
}

// Article представляет статью. Slug назначается сервером и не меняется.
type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	Author         Author    `json:"author"`
	CreatedAt      time.Time `json:"createdAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
}

// ApplyFavorite заменяет состояние избранного значениями, вернувшимися с сервера.
func (a *Article) ApplyFavorite(server *Article) {
	a.Favorited = server.Favorited
	a.FavoritesCount = clampCount(server.FavoritesCount)
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Draft содержит редактируемые поля статьи.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

// NewDraft строит черновик из статьи для формы редактирования.
// Пустой список тегов представляется одним пустым полем.
func NewDraft(a *Article) Draft {
	tags := append([]string(nil), a.TagList...)
	if len(tags) == 0 {
		tags = []string{""}
	}
	return Draft{
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		TagList:     tags,
	}
}

// EmptyDraft возвращает черновик для формы создания статьи.
func EmptyDraft() Draft {
	return Draft{TagList: []string{""}}
}

// CleanTags возвращает теги без пустых и пробельных значений, сохраняя порядок.
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}
