package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	sessionAdapter "realworldblog/internal/blog/adapters/session"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/app/views"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
)

type mockClient struct {
	mock.Mock
}

var _ apiPort.Client = (*mockClient)(nil)

func (m *mockClient) ListArticles(ctx context.Context, token string, limit, offset int) ([]entities.Article, int, error) {
	args := m.Called(ctx, token, limit, offset)
	articles, _ := args.Get(0).([]entities.Article)
	return articles, args.Int(1), args.Error(2)
}

func (m *mockClient) GetArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	args := m.Called(ctx, token, slug)
	a, _ := args.Get(0).(*entities.Article)
	return a, args.Error(1)
}

func (m *mockClient) CreateArticle(ctx context.Context, token string, draft entities.Draft) (*entities.Article, error) {
	args := m.Called(ctx, token, draft)
	a, _ := args.Get(0).(*entities.Article)
	return a, args.Error(1)
}

func (m *mockClient) UpdateArticle(ctx context.Context, token, slug string, draft entities.Draft) (*entities.Article, error) {
	args := m.Called(ctx, token, slug, draft)
	a, _ := args.Get(0).(*entities.Article)
	return a, args.Error(1)
}

func (m *mockClient) DeleteArticle(ctx context.Context, token, slug string) error {
	return m.Called(ctx, token, slug).Error(0)
}

func (m *mockClient) FavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	args := m.Called(ctx, token, slug)
	a, _ := args.Get(0).(*entities.Article)
	return a, args.Error(1)
}

func (m *mockClient) UnfavoriteArticle(ctx context.Context, token, slug string) (*entities.Article, error) {
	args := m.Called(ctx, token, slug)
	a, _ := args.Get(0).(*entities.Article)
	return a, args.Error(1)
}

func (m *mockClient) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*entities.Session)
	return s, args.Error(1)
}

func (m *mockClient) Register(ctx context.Context, username, email, password string) (*entities.Session, error) {
	args := m.Called(ctx, username, email, password)
	s, _ := args.Get(0).(*entities.Session)
	return s, args.Error(1)
}

func (m *mockClient) CurrentUser(ctx context.Context, token string) (*entities.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*entities.Session)
	return s, args.Error(1)
}

func (m *mockClient) UpdateUser(ctx context.Context, token string, update apiPort.UserUpdate) (*entities.Session, error) {
	args := m.Called(ctx, token, update)
	s, _ := args.Get(0).(*entities.Session)
	return s, args.Error(1)
}

type fixture struct {
	client     *mockClient
	store      *session.Store
	controller *forms.Controller
	tracker    *views.Tracker
}

func newFixture() *fixture {
	store := session.NewStore(sessionAdapter.NewMemoryRepository(), time.Hour)
	tracker := views.NewTracker()
	store.Subscribe(tracker.Observe)

	return &fixture{
		client:     new(mockClient),
		store:      store,
		controller: forms.NewController(),
		tracker:    tracker,
	}
}

func unauthorized(op string) error {
	return &apiPort.Error{Kind: apiPort.KindUnauthorized, Op: op, Status: 401}
}
