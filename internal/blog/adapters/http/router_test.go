package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiAdapter "realworldblog/internal/blog/adapters/api"
	blogHTTP "realworldblog/internal/blog/adapters/http"
	sessionAdapter "realworldblog/internal/blog/adapters/session"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/services"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/app/views"
	"realworldblog/internal/blog/config"
)

type upstream struct {
	mu       sync.Mutex
	requests []string
	status   map[string]int
}

func (u *upstream) calls() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.requests...)
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	entry := r.Method + " " + r.URL.Path
	if r.URL.RawQuery != "" {
		entry += "?" + r.URL.RawQuery
	}
	u.requests = append(u.requests, entry)
	status, override := u.status[r.Method+" "+r.URL.Path]
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if override {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"errors":{"message":"rejected"}}`)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/users":
		_, _ = io.WriteString(w, `{"user":{"username":"ann","email":"ann@x.com","token":"token-ann"}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/user":
		_, _ = io.WriteString(w, `{"user":{"username":"ann","email":"ann@x.com","token":"token-ann","image":"https://i.example/ann.png"}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/articles":
		_, _ = io.WriteString(w, `{"articles":[{"slug":"first","title":"First","tagList":[],"author":{"username":"bob"}}],"articlesCount":12}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/articles/first":
		_, _ = io.WriteString(w, `{"article":{"slug":"first","title":"First","tagList":[],"favorited":false,"favoritesCount":3,"author":{"username":"bob"}}}`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/articles/first/favorite":
		_, _ = io.WriteString(w, `{"article":{"slug":"first","favorited":true,"favoritesCount":4,"author":{"username":"bob"}}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{}`)
	}
}

func newApp(t *testing.T) (*fiber.App, *upstream) {
	t.Helper()

	up := &upstream{status: map[string]int{}}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client, err := apiAdapter.NewClient(&config.APIConfig{BaseURL: srv.URL + "/api", RequestTimeout: time.Second, PageSize: 5})
	require.NoError(t, err)

	store := session.NewStore(sessionAdapter.NewMemoryRepository(), time.Hour)
	tracker := views.NewTracker()
	store.Subscribe(tracker.Observe)
	controller := forms.NewController()

	sessionCfg := &config.SessionConfig{Backend: config.SessionBackendMemory, CookieName: "blog_session", TTL: time.Hour}

	app := fiber.New()
	blogHTTP.SetupRouter(app, blogHTTP.Services{
		Auth:     services.NewAuthService(client, store, controller),
		Profile:  services.NewProfileService(client, store, controller, tracker),
		Articles: services.NewArticleService(client, store, controller, tracker, 5),
	}, store, sessionCfg)

	return app, up
}

func do(t *testing.T, app *fiber.App, method, target, body string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "blog_session" {
			return c
		}
	}
	t.Fatal("session cookie not issued")
	return nil
}

func signUp(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/sign-up",
		`{"username":"ann","email":"ann@x.com","password":"secret1","repeatPassword":"secret1","agreement":true}`)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	return sessionCookie(t, resp)
}

func TestSignUpEstablishesSession(t *testing.T) {
	app, up := newApp(t)

	resp := do(t, app, http.MethodPost, "/sign-up",
		`{"username":"ann","email":"ann@x.com","password":"secret1","repeatPassword":"secret1","agreement":true}`)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	body := decode(t, resp)
	assert.Equal(t, "/", body["navigate"])
	user, _ := body["user"].(map[string]any)
	assert.Equal(t, "ann", user["username"])
	assert.NotContains(t, user, "token")

	cookie := sessionCookie(t, resp)
	assert.Equal(t, []string{"POST /api/users"}, up.calls())

	view := decode(t, do(t, app, http.MethodGet, "/session", "", cookie))
	assert.Equal(t, true, view["authenticated"])
	user, _ = view["user"].(map[string]any)
	assert.Equal(t, "ann", user["username"])
}

func TestSignUpLocalValidation(t *testing.T) {
	app, up := newApp(t)

	resp := do(t, app, http.MethodPost, "/sign-up",
		`{"username":"ann","email":"ann@x.com","password":"abc","repeatPassword":"abc","agreement":true}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode(t, resp)
	errs, _ := body["errors"].(map[string]any)
	assert.Equal(t, "Your password needs to be at least 6 characters.", errs["password"])
	values, _ := body["values"].(map[string]any)
	assert.Equal(t, "ann", values["username"])
	assert.NotContains(t, values, "password")
	assert.Empty(t, up.calls(), "invalid form never reaches the network")
}

func TestGuardedRoutesRedirectWithoutSession(t *testing.T) {
	app, up := newApp(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/profile"},
		{http.MethodGet, "/new-article"},
		{http.MethodGet, "/articles/first/edit"},
		{http.MethodPost, "/articles/first/favorite"},
		{http.MethodDelete, "/articles/first"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp := do(t, app, r.method, r.path, "")
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
			assert.Equal(t, "/sign-in", decode(t, resp)["navigate"])
		})
	}
	assert.Empty(t, up.calls())
}

func TestListPagination(t *testing.T) {
	app, up := newApp(t)

	body := decode(t, do(t, app, http.MethodGet, "/articles?page=2", ""))
	assert.Equal(t, []string{"GET /api/articles?limit=5&offset=5"}, up.calls())
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 5, body["pageSize"])
	assert.EqualValues(t, 12, body["articlesCount"])
	assert.EqualValues(t, 3, body["totalPages"])

	body = decode(t, do(t, app, http.MethodGet, "/?page=abc", ""))
	assert.EqualValues(t, 1, body["page"])
	assert.Equal(t, "GET /api/articles?limit=5&offset=0", up.calls()[1])
}

func TestArticleView(t *testing.T) {
	app, _ := newApp(t)

	resp := do(t, app, http.MethodGet, "/articles/first", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, false, body["isAuthor"])

	resp = do(t, app, http.MethodGet, "/articles/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEditByNonAuthorNavigatesHome(t *testing.T) {
	app, _ := newApp(t)
	cookie := signUp(t, app)

	resp := do(t, app, http.MethodGet, "/articles/first/edit", "", cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestNewArticleFormHasOneEmptyTag(t *testing.T) {
	app, _ := newApp(t)
	cookie := signUp(t, app)

	body := decode(t, do(t, app, http.MethodGet, "/new-article", "", cookie))
	values, _ := body["values"].(map[string]any)
	assert.Equal(t, []any{""}, values["tagList"])
}

func TestToggleFavoriteUsesServerCounts(t *testing.T) {
	app, up := newApp(t)
	cookie := signUp(t, app)

	resp := do(t, app, http.MethodPost, "/articles/first/favorite", `{"favorited":false}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, true, body["favorited"])
	assert.EqualValues(t, 4, body["favoritesCount"])
	assert.Equal(t, "POST /api/articles/first/favorite", up.calls()[len(up.calls())-1])
}

func TestProfileRefreshAndRejectedToken(t *testing.T) {
	app, up := newApp(t)
	cookie := signUp(t, app)

	body := decode(t, do(t, app, http.MethodGet, "/profile", "", cookie))
	values, _ := body["values"].(map[string]any)
	assert.Equal(t, "https://i.example/ann.png", values["avatar"])

	up.mu.Lock()
	up.status["GET /api/user"] = http.StatusUnauthorized
	up.mu.Unlock()

	resp := do(t, app, http.MethodGet, "/profile", "", cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))

	view := decode(t, do(t, app, http.MethodGet, "/session", "", cookie))
	assert.Equal(t, false, view["authenticated"], "rejected token clears the session")
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	app, up := newApp(t)
	up.status["GET /api/articles"] = http.StatusInternalServerError

	resp := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSignInRejectionShowsServerFieldErrors(t *testing.T) {
	app, up := newApp(t)
	up.status["POST /api/users/login"] = http.StatusForbidden

	resp := do(t, app, http.MethodPost, "/sign-in", `{"email":"ann@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode(t, resp)
	errs, _ := body["errors"].(map[string]any)
	assert.Equal(t, "rejected", errs["message"])
	values, _ := body["values"].(map[string]any)
	assert.Equal(t, "ann@x.com", values["email"])
	assert.NotContains(t, values, "password")
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newApp(t)
	cookie := signUp(t, app)

	resp := do(t, app, http.MethodPost, "/logout", "", cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	view := decode(t, do(t, app, http.MethodGet, "/session", "", cookie))
	assert.Equal(t, false, view["authenticated"])
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newApp(t)

	resp := do(t, app, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
