package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/errhttp"
	"github.com/ghuser/capsule/pkg/httpx"
)

// MeResponse identifies the session user.
type MeResponse struct {
	UserID uuid.UUID `json:"user_id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name MeResponse

// MeHandler handles GET /auth/me requests.
type MeHandler struct{}

// NewMeHandler returns a MeHandler.
func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Execute reports the current session's user ID. Clients use this to decide
// between the signed-in and signed-out shells.
//
//	@Summary		Current session
//	@Description	Returns the session user's ID, or 401 when no session exists
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	MeResponse
//	@Failure		401	{object}	map[string]string
//	@Router			/auth/me [get]
func (h *MeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, MeResponse{UserID: userID})
}
