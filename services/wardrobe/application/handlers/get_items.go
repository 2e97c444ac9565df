package handlers

import (
	"net/http"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/httpx"
	"github.com/ghuser/capsule/pkg/logger"
	appsvcs "github.com/ghuser/capsule/services/wardrobe/application/services"
)

// ItemListResponse wraps the item collection for GET /items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
} // @name ItemListResponse

// GetItemsHandler handles GET /items requests.
type GetItemsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services, log logger.Logger) *GetItemsHandler {
	return &GetItemsHandler{svc: svc, log: log}
}

// Execute lists the session user's items, newest first. This endpoint fails
// open: anonymous callers and storage errors both yield an empty list so the
// wardrobe page always renders.
//
//	@Summary		List clothing items
//	@Description	Lists all clothing items owned by the session user, newest first
//	@Tags			items
//	@Produce		json
//	@Success		200	{object}	ItemListResponse
//	@Router			/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusOK, ItemListResponse{Items: []ItemResponse{}})
		return
	}

	items, err := h.svc.Item.List(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to list items", "error", err, "user_id", userID)
		httpx.JSON(w, http.StatusOK, ItemListResponse{Items: []ItemResponse{}})
		return
	}

	httpx.JSON(w, http.StatusOK, ItemListResponse{Items: toItemResponses(items)})
}
