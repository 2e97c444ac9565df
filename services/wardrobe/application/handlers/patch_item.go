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

// UpdateItemRequest is the request body for PATCH /items/{id}. Every field is
// tri-state: absent leaves the stored value unchanged, null clears it, and a
// value replaces it. Image URLs are fixed at creation and not updatable.
type UpdateItemRequest struct {
	Name          httpx.Nullable[string] `json:"name"`
	Brand         httpx.Nullable[string] `json:"brand"`
	Type          httpx.Nullable[string] `json:"type"`
	Color         httpx.Nullable[string] `json:"color"`
	Description   httpx.Nullable[string] `json:"description"`
	Size          httpx.Nullable[string] `json:"size"`
	Price         httpx.Nullable[string] `json:"price"`
	DatePurchased httpx.Nullable[string] `json:"date_purchased"`
} // @name UpdateItemRequest

// PatchItemHandler handles PATCH /items/{id} requests.
type PatchItemHandler struct {
	svc *appsvcs.Services
}

// NewPatchItemHandler returns a PatchItemHandler backed by the given services.
func NewPatchItemHandler(svc *appsvcs.Services) *PatchItemHandler {
	return &PatchItemHandler{svc: svc}
}

// Execute applies a partial update to an item owned by the session user.
//
//	@Summary		Update clothing item
//	@Description	Partially updates a clothing item; absent fields are left unchanged, null fields are cleared
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Item ID"
//	@Param			request	body		UpdateItemRequest	true	"Partial item update"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id} [patch]
func (h *PatchItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cmd := appsvcs.UpdateItemCommand{
		Name:          toFieldChange(req.Name),
		Brand:         toFieldChange(req.Brand),
		Type:          toFieldChange(req.Type),
		Color:         toFieldChange(req.Color),
		Description:   toFieldChange(req.Description),
		Size:          toFieldChange(req.Size),
		Price:         toFieldChange(req.Price),
		DatePurchased: toFieldChange(req.DatePurchased),
	}

	item, err := h.svc.Item.Update(r.Context(), userID, id, cmd)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

func toFieldChange(n httpx.Nullable[string]) appsvcs.FieldChange[string] {
	if !n.Set {
		return appsvcs.Keep[string]()
	}
	return appsvcs.FieldChange[string]{Changed: true, Value: n.Ptr()}
}
