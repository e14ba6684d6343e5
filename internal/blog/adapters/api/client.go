// Package api предоставляет реализацию клиента внешнего REST API блога.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/config"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	"realworldblog/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodListArticles      = "ListArticles"
	LogMethodGetArticle        = "GetArticle"
	LogMethodCreateArticle     = "CreateArticle"
	LogMethodUpdateArticle     = "UpdateArticle"
	LogMethodDeleteArticle     = "DeleteArticle"
	LogMethodFavoriteArticle   = "FavoriteArticle"
	LogMethodUnfavoriteArticle = "UnfavoriteArticle"
	LogMethodLogin             = "Login"
	LogMethodRegister          = "Register"
	LogMethodCurrentUser       = "CurrentUser"
	LogMethodUpdateUser        = "UpdateUser"

	LogRequestFailed   = "api request failed"
	LogRequestRejected = "api request rejected"

	ErrorFailedEncodeBody   = "failed to encode request body"
	ErrorFailedBuildRequest = "failed to build request"
	ErrorFailedDecodeBody   = "failed to decode response body"

	headerAuthorization = "Authorization"
	tokenScheme         = "Token "
	contentTypeJSON     = "application/json"
	maxErrorBody        = 1 << 20
)

// Client реализует интерфейс api.Client поверх HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

var _ apiPort.Client = (*Client)(nil)

// NewClient создает клиента для API по адресу из конфигурации.
func NewClient(cfg *config.APIConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidBaseURL, err)
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

// ListArticles получает страницу статей.
func (c *Client) ListArticles(ctx context.Context, token string, limit, offset int) ([]entities.Article, int, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var out dto.ArticlesEnvelope
	if err := c.do(ctx, LogMethodListArticles, http.MethodGet, "/articles", query, token, nil, &out); err != nil {
		return nil, 0, err
	}

	articles := make([]entities.Article, 0, len(out.Articles))
	for i := range out.Articles {
		articles = append(articles, *toArticle(&out.Articles[i]))
	}
	return articles, out.ArticlesCount, nil
}

// GetArticle получает статью по slug.
func (c *Client) GetArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	var out dto.ArticleEnvelope
	if err := c.do(ctx, LogMethodGetArticle, http.MethodGet, articlePath(slug), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return toArticle(&out.Article), nil
}

// CreateArticle создает статью.
func (c *Client) CreateArticle(ctx context.Context, token string, draft entities.Draft) (*entities.Article, error) {
	in := dto.ArticleInputEnvelope{Article: toArticleInput(draft)}

	var out dto.ArticleEnvelope
	if err := c.do(ctx, LogMethodCreateArticle, http.MethodPost, "/articles", nil, token, in, &out); err != nil {
		return nil, err
	}
	return toArticle(&out.Article), nil
}

// UpdateArticle обновляет статью.
func (c *Client) UpdateArticle(ctx context.Context, token, slug string, draft entities.Draft) (*entities.Article, error) {
	in := dto.ArticleInputEnvelope{Article: toArticleInput(draft)}

	var out dto.ArticleEnvelope
	if err := c.do(ctx, LogMethodUpdateArticle, http.MethodPut, articlePath(slug), nil, token, in, &out); err != nil {
		return nil, err
	}
	return toArticle(&out.Article), nil
}

// DeleteArticle удаляет статью.
func (c *Client) DeleteArticle(ctx context.Context, token, slug string) error {
	return c.do(ctx, LogMethodDeleteArticle, http.MethodDelete, articlePath(slug), nil, token, nil, nil)
}

// FavoriteArticle добавляет статью в избранное.
func (c *Client) FavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	var out dto.ArticleEnvelope
	if err := c.do(ctx, LogMethodFavoriteArticle, http.MethodPost, favoritePath(slug), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return toArticle(&out.Article), nil
}

// UnfavoriteArticle убирает статью из избранного.
func (c *Client) UnfavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	var out dto.ArticleEnvelope
	if err := c.do(ctx, LogMethodUnfavoriteArticle, http.MethodDelete, favoritePath(slug), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return toArticle(&out.Article), nil
}

// Login выполняет вход пользователя.
func (c *Client) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	in := dto.LoginEnvelope{User: dto.LoginRequest{Email: email, Password: password}}

	var out dto.UserEnvelope
	if err := c.do(ctx, LogMethodLogin, http.MethodPost, "/users/login", nil, "", in, &out); err != nil {
		return nil, err
	}
	return toSession(&out.User), nil
}

// Register регистрирует нового пользователя.
func (c *Client) Register(ctx context.Context, username, email, password string) (*entities.Session, error) {
	in := dto.RegisterEnvelope{User: dto.RegisterRequest{Username: username, Email: email, Password: password}}

	var out dto.UserEnvelope
	if err := c.do(ctx, LogMethodRegister, http.MethodPost, "/users", nil, "", in, &out); err != nil {
		return nil, err
	}
	return toSession(&out.User), nil
}

// CurrentUser получает пользователя по токену.
func (c *Client) CurrentUser(ctx context.Context, token string) (*entities.Session, error) {
	var out dto.UserEnvelope
	if err := c.do(ctx, LogMethodCurrentUser, http.MethodGet, "/user", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return toSession(&out.User), nil
}

// UpdateUser обновляет профиль пользователя.
func (c *Client) UpdateUser(ctx context.Context, token string, update apiPort.UserUpdate) (*entities.Session, error) {
	in := dto.UpdateUserEnvelope{User: dto.UpdateUserRequest{
		Username: update.Username,
		Email:    update.Email,
		Image:    update.Image,
		Password: update.Password,
	}}

	var out dto.UserEnvelope
	if err := c.do(ctx, LogMethodUpdateUser, http.MethodPut, "/user", nil, token, in, &out); err != nil {
		return nil, err
	}
	return toSession(&out.User), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, token string, in, out any) error {
	log := logger.Log(ctx).With(zap.String("method", op), zap.String("path", path))

	req, err := c.newRequest(ctx, method, path, query, token, in)
	if err != nil {
		return &apiPort.Error{Kind: apiPort.KindTransport, Op: op, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, LogRequestFailed, zap.Error(err))
		return &apiPort.Error{Kind: apiPort.KindTransport, Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(op, resp)
		log.Warn(ctx, LogRequestRejected,
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(apiErr.Kind)))
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error(ctx, ErrorFailedDecodeBody, zap.Error(err))
		return &apiPort.Error{
			Kind:   apiPort.KindServer,
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s: %w", ErrorFailedDecodeBody, err),
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, token string, in any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorFailedEncodeBody, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedBuildRequest, err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if token != "" {
		req.Header.Set(headerAuthorization, tokenScheme+token)
	}
	return req, nil
}

func decodeError(op string, resp *http.Response) *apiPort.Error {
	apiErr := &apiPort.Error{
		Kind:   apiPort.KindForStatus(resp.StatusCode),
		Op:     op,
		Status: resp.StatusCode,
	}

	var envelope dto.ErrorsEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&envelope); err != nil {
		return apiErr
	}

	fields := make(entities.FieldErrors, len(envelope.Errors))
	for field, raw := range envelope.Errors {
		if msg, ok := decodeMessage(raw); ok {
			fields.Add(field, msg)
		}
	}
	if fields.Empty() {
		return apiErr
	}

	apiErr.Fields = fields
	if resp.StatusCode == http.StatusBadRequest {
		apiErr.Kind = apiPort.KindValidation
	}
	return apiErr
}

func decodeMessage(raw json.RawMessage) (string, bool) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, true
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.Join(many, ", "), true
	}
	return "", false
}

func articlePath(slug string) string {
	return "/articles/" + url.PathEscape(slug)
}

func favoritePath(slug string) string {
	return articlePath(slug) + "/favorite"
}

// IsTransient сообщает, можно ли безопасно повторить чтение после ошибки.
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return apiPort.IsKind(err, apiPort.KindTransport)
}
