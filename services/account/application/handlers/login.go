package handlers

import (
	"net/http"

	"github.com/ghuser/capsule/pkg/auth"
	appsvcs "github.com/ghuser/capsule/services/account/application/services"
)

// stateCookieName holds the OAuth CSRF state between the redirect out and
// the callback. Short-lived and HttpOnly; never part of the session proper.
const stateCookieName = "capsule_oauth_state"

const stateCookieMaxAge = 600 // seconds

// LoginHandler handles GET /auth/login requests.
type LoginHandler struct {
	svc           *appsvcs.Services
	secureCookies bool
}

// NewLoginHandler returns a LoginHandler backed by the given services.
func NewLoginHandler(svc *appsvcs.Services, secureCookies bool) *LoginHandler {
	return &LoginHandler{svc: svc, secureCookies: secureCookies}
}

// Execute starts the Google sign-in flow: a fresh state token is pinned in a
// short-lived cookie and the browser is redirected to the authorization URL.
//
//	@Summary		Start Google sign-in
//	@Description	Redirects to Google's authorization page with a CSRF state token
//	@Tags			auth
//	@Success		302
//	@Router			/auth/login [get]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	state := auth.NewState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.svc.Account.AuthURL(state), http.StatusFound)
}

// clearStateCookie expires the OAuth state cookie.
func clearStateCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
