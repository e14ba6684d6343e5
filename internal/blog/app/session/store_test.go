package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sessionAdapter "realworldblog/internal/blog/adapters/session"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/domain/entities"
	sessionPort "realworldblog/internal/blog/ports/session"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ann",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return signed
}

func TestStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(sessionAdapter.NewMemoryRepository(), time.Hour)

	var events []session.Event
	unsubscribe := store.Subscribe(func(_ context.Context, e session.Event) {
		events = append(events, e)
	})

	_, ok, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "sid", &entities.Session{Username: "ann", Email: "ann@x.com", Token: "opaque"}))

	got, ok, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ann", got.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 5*time.Second, "non-JWT token falls back to the configured TTL")

	require.NoError(t, store.Clear(ctx, "sid"))
	_, ok, err = store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)

	require.Len(t, events, 2)
	assert.Equal(t, "sid", events[0].SessionID)
	assert.Equal(t, "ann", events[0].Session.Username)
	assert.Nil(t, events[1].Session)

	unsubscribe()
	unsubscribe()
	require.NoError(t, store.Clear(ctx, "sid"))
	assert.Len(t, events, 2, "unsubscribed observer is not called")
}

func TestStore_SetRejectsEmptyToken(t *testing.T) {
	store := session.NewStore(sessionAdapter.NewMemoryRepository(), time.Hour)

	err := store.Set(context.Background(), "sid", &entities.Session{Username: "ann"})
	assert.ErrorIs(t, err, entities.ErrEmptyToken)
}

func TestStore_TokenExpiryBoundsLifetime(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(sessionAdapter.NewMemoryRepository(), time.Hour)

	short := signedToken(t, time.Now().Add(10*time.Minute))
	require.NoError(t, store.Set(ctx, "a", &entities.Session{Username: "ann", Token: short}))
	got, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), got.ExpiresAt, 5*time.Second)

	long := signedToken(t, time.Now().Add(48*time.Hour))
	require.NoError(t, store.Set(ctx, "b", &entities.Session{Username: "ann", Token: long}))
	got, _, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 5*time.Second, "capped by the configured TTL")

	expired := signedToken(t, time.Now().Add(-time.Minute))
	err = store.Set(ctx, "c", &entities.Session{Username: "ann", Token: expired})
	assert.ErrorIs(t, err, entities.ErrSessionExpired)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok := session.TokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = session.TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Load(ctx context.Context, sid string) (*entities.Session, error) {
	args := m.Called(ctx, sid)
	s, _ := args.Get(0).(*entities.Session)
	return s, args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, sid string, s *entities.Session, ttl time.Duration) error {
	return m.Called(ctx, sid, s, ttl).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

func (m *mockRepository) Close() error {
	return m.Called().Error(0)
}

var _ sessionPort.Repository = (*mockRepository)(nil)

func TestStore_GetClearsExpiredSession(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("Load", ctx, "sid").Return(&entities.Session{Username: "ann", Token: "t", ExpiresAt: time.Now().Add(-time.Second)}, nil)
	repo.On("Delete", ctx, "sid").Return(nil)

	store := session.NewStore(repo, time.Hour)
	cleared := false
	store.Subscribe(func(_ context.Context, e session.Event) { cleared = e.Session == nil })

	s, ok, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.True(t, cleared)
	repo.AssertExpectations(t)
}

func TestStore_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	repo := new(mockRepository)
	repo.On("Load", ctx, "sid").Return(nil, boom)
	repo.On("Save", ctx, "sid", mock.Anything, time.Hour).Return(boom)

	store := session.NewStore(repo, time.Hour)
	notified := false
	store.Subscribe(func(context.Context, session.Event) { notified = true })

	_, _, err := store.Get(ctx, "sid")
	assert.ErrorIs(t, err, boom)

	err = store.Set(ctx, "sid", &entities.Session{Token: "t"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, notified, "failed writes do not notify")
}
