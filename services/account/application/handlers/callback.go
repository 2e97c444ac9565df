package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/errhttp"
	"github.com/ghuser/capsule/pkg/httpx"
	"github.com/ghuser/capsule/pkg/logger"
	appsvcs "github.com/ghuser/capsule/services/account/application/services"
)

// CallbackHandler handles GET /auth/callback requests.
type CallbackHandler struct {
	svc           *appsvcs.Services
	store         sessions.Store
	log           logger.Logger
	secureCookies bool
}

// NewCallbackHandler returns a CallbackHandler backed by the given services.
func NewCallbackHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger, secureCookies bool) *CallbackHandler {
	return &CallbackHandler{svc: svc, store: store, log: log, secureCookies: secureCookies}
}

// Execute completes the Google sign-in flow. The state query parameter must
// match the state cookie set at login; mismatches abort before any exchange.
//
//	@Summary		Complete Google sign-in
//	@Description	Verifies the CSRF state, exchanges the authorization code, and establishes a session
//	@Tags			auth
//	@Success		302
//	@Failure		400	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Router			/auth/callback [get]
func (h *CallbackHandler) Execute(w http.ResponseWriter, r *http.Request) {
	defer clearStateCookie(w, h.secureCookies)

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		httpx.JSONError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	user, err := h.svc.Account.CompleteSignIn(r.Context(), code)
	if err != nil {
		h.log.WarnContext(r.Context(), "sign-in rejected", "error", err)
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.SignIn(w, r, h.store, user.UserID()); err != nil {
		h.log.ErrorContext(r.Context(), "failed to establish session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	h.log.InfoContext(r.Context(), "user signed in", "user_id", user.UserID())
	http.Redirect(w, r, "/", http.StatusFound)
}
