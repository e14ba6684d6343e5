package api

import (
	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/domain/entities"
)

func toArticle(a *dto.Article) *entities.Article {
	tags := a.TagList
	if tags == nil {
		tags = []string{}
	}
	return &entities.Article{
		Slug:        a.Slug,
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		TagList:     tags,
		Author: entities.Author{
			Username: a.Author.Username,
			Image:    a.Author.Image,
		},
		CreatedAt:      a.CreatedAt,
		Favorited:      a.Favorited,
		FavoritesCount: max(a.FavoritesCount, 0),
	}
}

func toArticleInput(d entities.Draft) dto.ArticleInput {
	return dto.ArticleInput{
		Title:       d.Title,
		Description: d.Description,
		Body:        d.Body,
		TagList:     entities.CleanTags(d.TagList),
	}
}

func toSession(u *dto.User) *entities.Session {
	return &entities.Session{
		Username: u.Username,
		Email:    u.Email,
		Token:    u.Token,
		Image:    u.Image,
		Bio:      u.Bio,
	}
}
