package forms_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/domain/entities"
	apiPort "realworldblog/internal/blog/ports/api"
)

func validSignUp() dto.SignUpForm {
	return dto.SignUpForm{
		Username:       "ann",
		Email:          "ann@x.com",
		Password:       "secret1",
		RepeatPassword: "secret1",
		Agreement:      true,
	}
}

func TestFormFields(t *testing.T) {
	assert.Equal(t, []string{"username", "email", "password", "repeatPassword", "agreement"}, forms.SignUp.Fields())
	assert.Equal(t, []string{"email", "password"}, forms.SignIn.Fields())
	assert.Equal(t, []string{"username", "email", "password", "avatar"}, forms.Profile.Fields())
	assert.Equal(t, []string{"title", "description", "body", "tagList"}, forms.Article.Fields())
}

func TestSignUpRuleOrder(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     entities.FieldErrors
	}{
		{"characters not bytes", "äöü", entities.FieldErrors{}},
		{"whitespace is not empty", "  ", entities.FieldErrors{"username": "Minimum 3 characters"}},
		{"required wins over min", "", entities.FieldErrors{"username": "Username is required"}},
		{"max counts characters", strings.Repeat("ä", 20), entities.FieldErrors{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validSignUp()
			f.Username = tt.username
			assert.Equal(t, tt.want, forms.SignUp.Validate(f))
		})
	}
}

func TestSignUpRepeatWithoutPassword(t *testing.T) {
	f := validSignUp()
	f.Password = ""

	assert.Equal(t, entities.FieldErrors{
		"password":       "Password is required",
		"repeatPassword": "Passwords must match",
	}, forms.SignUp.Validate(f))
}

func TestSignUpSchema(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.SignUpForm)
		want   entities.FieldErrors
	}{
		{"valid", func(*dto.SignUpForm) {}, entities.FieldErrors{}},
		{"short password", func(f *dto.SignUpForm) { f.Password, f.RepeatPassword = "abc", "abc" },
			entities.FieldErrors{"password": "Your password needs to be at least 6 characters."}},
		{"long password", func(f *dto.SignUpForm) {
			f.Password = strings.Repeat("a", 41)
			f.RepeatPassword = f.Password
		}, entities.FieldErrors{"password": "Maximum 40 characters"}},
		{"short username", func(f *dto.SignUpForm) { f.Username = "an" }, entities.FieldErrors{"username": "Minimum 3 characters"}},
		{"long username", func(f *dto.SignUpForm) { f.Username = strings.Repeat("a", 21) }, entities.FieldErrors{"username": "Maximum 20 characters"}},
		{"bad email", func(f *dto.SignUpForm) { f.Email = "ann@x" }, entities.FieldErrors{"email": "Invalid email address"}},
		{"mismatch", func(f *dto.SignUpForm) { f.RepeatPassword = "secret2" }, entities.FieldErrors{"repeatPassword": "Passwords must match"}},
		{"no agreement", func(f *dto.SignUpForm) { f.Agreement = false }, entities.FieldErrors{"agreement": "You must agree to the terms"}},
		{"empty form", func(f *dto.SignUpForm) { *f = dto.SignUpForm{} }, entities.FieldErrors{
			"username":       "Username is required",
			"email":          "Email is required",
			"password":       "Password is required",
			"repeatPassword": "Please repeat your password",
			"agreement":      "You must agree to the terms",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validSignUp()
			tt.mutate(&f)
			assert.Equal(t, tt.want, forms.SignUp.Validate(f))
		})
	}
}

func TestSignInSchema(t *testing.T) {
	assert.Equal(t, entities.FieldErrors{"email": "Email is required", "password": "Password is required"},
		forms.SignIn.Validate(dto.SignInForm{}))
	assert.Empty(t, forms.SignIn.Validate(dto.SignInForm{Email: "ann@x.com", Password: "x"}))
}

func TestProfileSchema(t *testing.T) {
	valid := dto.ProfileForm{Username: "ann", Email: "ann@x.com", Avatar: "https://i.example/a.png"}
	assert.Empty(t, forms.Profile.Validate(valid), "password is optional")

	short := valid
	short.Password = "abc"
	assert.Equal(t, entities.FieldErrors{"password": "Your password needs to be at least 6 characters."}, forms.Profile.Validate(short))

	badURL := valid
	badURL.Avatar = "not a url"
	assert.Equal(t, entities.FieldErrors{"avatar": "Invalid URL"}, forms.Profile.Validate(badURL))

	noAvatar := valid
	noAvatar.Avatar = ""
	assert.Equal(t, entities.FieldErrors{"avatar": "Avatar URL is required"}, forms.Profile.Validate(noAvatar))
}

func TestArticleSchema(t *testing.T) {
	assert.Equal(t, entities.FieldErrors{
		"title":       "Title is required",
		"description": "Description is required",
		"body":        "Text is required",
	}, forms.Article.Validate(dto.ArticleForm{TagList: []string{""}}))

	tags := make([]string, 11)
	for i := range tags {
		tags[i] = "t"
	}
	tooMany := dto.ArticleForm{Title: "T", Description: "D", Body: "B", TagList: tags}
	assert.Equal(t, entities.FieldErrors{"tagList": "Maximum 10 tags"}, forms.Article.Validate(tooMany))

	withBlanks := dto.ArticleForm{Title: "T", Description: "D", Body: "B", TagList: append(tags[:10], "", " ")}
	assert.Empty(t, forms.Article.Validate(withBlanks), "blank tags do not count")
	assert.Len(t, forms.DraftOf(withBlanks).TagList, 10)
}

func TestSubmit_InvalidMakesNoCall(t *testing.T) {
	c := forms.NewController()
	f := validSignUp()
	f.Password, f.RepeatPassword = "abc", "abc"

	calls := 0
	_, err := forms.Submit(context.Background(), c, "sid", forms.SignUp, f,
		func(context.Context, dto.SignUpForm) (string, error) { calls++; return "", nil },
		nil)

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Your password needs to be at least 6 characters.", verr.Fields["password"])
	assert.NotContains(t, verr.Values, "password")
	assert.NotContains(t, verr.Values, "repeatPassword")
	assert.Equal(t, "ann", verr.Values["username"])
	assert.Zero(t, calls)
}

func TestSubmit_SuccessAppliesOnce(t *testing.T) {
	c := forms.NewController()

	calls, applied := 0, 0
	result, err := forms.Submit(context.Background(), c, "sid", forms.SignUp, validSignUp(),
		func(_ context.Context, in dto.SignUpForm) (string, error) { calls++; return in.Username, nil },
		func(_ context.Context, r string) error { applied++; assert.Equal(t, "ann", r); return nil })

	require.NoError(t, err)
	assert.Equal(t, "ann", result)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, applied)
}

func TestSubmit_ServerFieldErrorsOverlay(t *testing.T) {
	c := forms.NewController()
	serverErr := &apiPort.Error{Kind: apiPort.KindValidation, Op: "Register", Status: 422,
		Fields: entities.FieldErrors{"email": "is already taken."}}

	applied := false
	_, err := forms.Submit(context.Background(), c, "sid", forms.SignUp, validSignUp(),
		func(context.Context, dto.SignUpForm) (string, error) { return "", serverErr },
		func(context.Context, string) error { applied = true; return nil })

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, entities.FieldErrors{"email": "is already taken."}, verr.Fields)
	assert.ErrorIs(t, err, serverErr)
	assert.False(t, applied)
}

func TestSubmit_OverlaysFieldsWhateverTheStatus(t *testing.T) {
	c := forms.NewController()
	forbidden := &apiPort.Error{Kind: apiPort.KindForbidden, Op: "Login", Status: 403,
		Fields: entities.FieldErrors{"email or password": "is invalid"}}

	_, err := forms.Submit(context.Background(), c, "sid", forms.SignIn, dto.SignInForm{Email: "ann@x.com", Password: "wrong"},
		func(context.Context, dto.SignInForm) (string, error) { return "", forbidden }, nil)

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, entities.FieldErrors{"email or password": "is invalid"}, verr.Fields)
	assert.Equal(t, map[string]any{"email": "ann@x.com"}, verr.Values)
	assert.True(t, apiPort.IsKind(err, apiPort.KindForbidden), "kind stays reachable through the form error")
}

func TestSubmit_OtherErrorsPassThrough(t *testing.T) {
	c := forms.NewController()
	unavailable := &apiPort.Error{Kind: apiPort.KindTransport, Op: "Login", Err: errors.New("dial")}

	_, err := forms.Submit(context.Background(), c, "sid", forms.SignIn, dto.SignInForm{Email: "a@b.co", Password: "p"},
		func(context.Context, dto.SignInForm) (string, error) { return "", unavailable }, nil)

	assert.ErrorIs(t, err, unavailable)
	var verr *forms.ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestSubmit_RejectsConcurrentSubmission(t *testing.T) {
	c := forms.NewController()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		_, err := forms.Submit(ctx, c, "sid", forms.SignUp, validSignUp(),
			func(context.Context, dto.SignUpForm) (string, error) {
				close(entered)
				<-release
				return "ok", nil
			}, nil)
		assert.NoError(t, err)
	}()

	<-entered
	_, err := forms.Submit(ctx, c, "sid", forms.SignUp, validSignUp(),
		func(context.Context, dto.SignUpForm) (string, error) { return "second", nil }, nil)
	assert.ErrorIs(t, err, forms.ErrInFlight)

	_, err = forms.Submit(ctx, c, "other", forms.SignUp, validSignUp(),
		func(context.Context, dto.SignUpForm) (string, error) { return "other tab", nil }, nil)
	assert.NoError(t, err, "another tab is independent")

	close(release)
	wg.Wait()

	_, err = forms.Submit(ctx, c, "sid", forms.SignUp, validSignUp(),
		func(context.Context, dto.SignUpForm) (string, error) { return "again", nil }, nil)
	assert.NoError(t, err, "guard is released after completion")
}
