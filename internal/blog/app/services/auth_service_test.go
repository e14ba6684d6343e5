package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/services"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
	servicesPort "realworldblog/internal/blog/ports/services"
)

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := services.NewAuthService(f.client, f.store, f.controller)
	caller := servicesPort.Caller{SessionID: "sid"}

	f.client.On("Register", mock.Anything, "ann", "ann@x.com", "secret1").
		Return(&entities.Session{Username: "ann", Email: "ann@x.com", Token: "t1"}, nil).Once()

	user, err := svc.SignUp(ctx, caller, dto.SignUpForm{
		Username: "ann", Email: "ann@x.com", Password: "secret1", RepeatPassword: "secret1", Agreement: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)

	stored, ok, err := f.store.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t1", stored.Token)
	f.client.AssertExpectations(t)
}

func TestAuthService_SignUpInvalidMakesNoCall(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := services.NewAuthService(f.client, f.store, f.controller)

	_, err := svc.SignUp(ctx, servicesPort.Caller{SessionID: "sid"}, dto.SignUpForm{
		Username: "ann", Email: "ann@x.com", Password: "abc", RepeatPassword: "abc", Agreement: true,
	})

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Your password needs to be at least 6 characters.", verr.Fields["password"])
	f.client.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, ok, err := f.store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_SignInServerErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := services.NewAuthService(f.client, f.store, f.controller)

	f.client.On("Login", mock.Anything, "ann@x.com", "wrong").Return(nil, &apiPort.Error{
		Kind: apiPort.KindValidation, Op: "Login", Status: 422,
		Fields: entities.FieldErrors{"email or password": "is invalid"},
	})

	_, err := svc.SignIn(ctx, servicesPort.Caller{SessionID: "sid"}, dto.SignInForm{Email: "ann@x.com", Password: "wrong"})

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is invalid", verr.Fields["email or password"])
	assert.Equal(t, map[string]any{"email": "ann@x.com"}, verr.Values)

	_, ok, err := f.store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := services.NewAuthService(f.client, f.store, f.controller)

	require.NoError(t, f.store.Set(ctx, "sid", &entities.Session{Username: "ann", Token: "t"}))
	require.NoError(t, svc.SignOut(ctx, servicesPort.Caller{SessionID: "sid"}))

	_, ok, err := f.store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)
}
