package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/httpx"
)

// LogoutHandler handles POST /auth/logout requests.
type LogoutHandler struct {
	store sessions.Store
}

// NewLogoutHandler returns a LogoutHandler over the given session store.
func NewLogoutHandler(store sessions.Store) *LogoutHandler {
	return &LogoutHandler{store: store}
}

// Execute terminates the session. Idempotent: logging out without a session
// still succeeds.
//
//	@Summary		Sign out
//	@Description	Destroys the current session
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/auth/logout [post]
func (h *LogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r, h.store); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Signed out."})
}
