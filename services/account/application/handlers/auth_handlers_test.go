package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/config"
	"github.com/ghuser/capsule/pkg/logger"
	"github.com/ghuser/capsule/services/account/application/handlers"
	appsvcs "github.com/ghuser/capsule/services/account/application/services"
)

type fakeProvider struct {
	user        *auth.GoogleUser
	exchangeErr error
	gotCode     string
}

func (f *fakeProvider) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*auth.GoogleUser, error) {
	f.gotCode = code
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.user, nil
}

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func newAuthRouter(provider *fakeProvider, allowlist []string, store sessions.Store) http.Handler {
	svcs := &appsvcs.Services{Account: appsvcs.NewAccountService(provider, allowlist)}
	log := testLogger()

	r := chi.NewRouter()
	r.Get("/auth/login", handlers.NewLoginHandler(svcs, false).Execute)
	r.Get("/auth/callback", handlers.NewCallbackHandler(svcs, store, log, false).Execute)
	r.Post("/auth/logout", handlers.NewLogoutHandler(store).Execute)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(store, log))
		r.Get("/auth/me", handlers.NewMeHandler().Execute)
	})
	return r
}

func stateCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "capsule_oauth_state" {
			return c
		}
	}
	t.Fatal("state cookie not set")
	return nil
}

func TestLogin_RedirectsWithState(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-auth-key-32-bytes-long-...."))
	h := newAuthRouter(&fakeProvider{}, nil, store)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/login", http.NoBody))

	require.Equal(t, http.StatusFound, rr.Code)
	cookie := stateCookie(t, rr)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", loc.Host)
	assert.Equal(t, cookie.Value, loc.Query().Get("state"), "redirect state must match cookie state")
}

func TestCallback_StateMismatch(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-auth-key-32-bytes-long-...."))
	provider := &fakeProvider{user: &auth.GoogleUser{Subject: "g-123", Email: "a@b.c"}}
	h := newAuthRouter(provider, nil, store)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=evil&code=abc", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "capsule_oauth_state", Value: "good"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, provider.gotCode, "exchange must not run on state mismatch")
}

func TestCallback_MissingCode(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-auth-key-32-bytes-long-...."))
	h := newAuthRouter(&fakeProvider{}, nil, store)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=good", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "capsule_oauth_state", Value: "good"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCallback_SignsInAndSessionWorks(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-auth-key-32-bytes-long-...."))
	user := &auth.GoogleUser{Subject: "g-123", Email: "user@example.com"}
	provider := &fakeProvider{user: user}
	h := newAuthRouter(provider, nil, store)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=good&code=the-code", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "capsule_oauth_state", Value: "good"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusFound, rr.Code, rr.Body.String())
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.Equal(t, "the-code", provider.gotCode)

	// the issued session cookie must authenticate /auth/me
	meReq := httptest.NewRequest(http.MethodGet, "/auth/me", http.NoBody)
	for _, c := range rr.Result().Cookies() {
		if c.Name == "capsule_session" {
			meReq.AddCookie(c)
		}
	}
	meRR := httptest.NewRecorder()
	h.ServeHTTP(meRR, meReq)
	require.Equal(t, http.StatusOK, meRR.Code, meRR.Body.String())
	assert.Contains(t, meRR.Body.String(), user.UserID().String())
}

func TestCallback_EmailNotAllowed(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-auth-key-32-bytes-long-...."))
	provider := &fakeProvider{user: &auth.GoogleUser{Subject: "g-123", Email: "stranger@example.com"}}
	h := newAuthRouter(provider, []string{"friend@example.com"}, store)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=good&code=abc", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "capsule_oauth_state", Value: "good"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestLogout_Idempotent(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-auth-key-32-bytes-long-...."))
	h := newAuthRouter(&fakeProvider{}, nil, store)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMe_Unauthenticated(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-auth-key-32-bytes-long-...."))
	h := newAuthRouter(&fakeProvider{}, nil, store)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/me", http.NoBody))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
