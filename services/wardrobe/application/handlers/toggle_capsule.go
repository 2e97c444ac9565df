package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/errhttp"
	"github.com/ghuser/capsule/pkg/httpx"
	appsvcs "github.com/ghuser/capsule/services/wardrobe/application/services"
	wardrobedomain "github.com/ghuser/capsule/services/wardrobe/domain"
)

// ToggleCapsuleResponse reports the item's new capsule state after a toggle.
type ToggleCapsuleResponse struct {
	InCapsule bool   `json:"in_capsule" example:"true"`
	Message   string `json:"message"    example:"Item added to capsule."`
} // @name ToggleCapsuleResponse

// ToggleCapsuleHandler handles POST /items/{id}/capsule requests.
type ToggleCapsuleHandler struct {
	svc *appsvcs.Services
}

// NewToggleCapsuleHandler returns a ToggleCapsuleHandler backed by the given services.
func NewToggleCapsuleHandler(svc *appsvcs.Services) *ToggleCapsuleHandler {
	return &ToggleCapsuleHandler{svc: svc}
}

// Execute flips the item's capsule membership. The operation takes no body;
// the server is the source of truth for the resulting state.
//
//	@Summary		Toggle capsule membership
//	@Description	Flips whether the item is part of the capsule and returns the new state
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ToggleCapsuleResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id}/capsule [post]
func (h *ToggleCapsuleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, wardrobedomain.ErrItemNotFound)
		return
	}

	inCapsule, msg, err := h.svc.Item.ToggleCapsule(r.Context(), userID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ToggleCapsuleResponse{InCapsule: inCapsule, Message: msg})
}
