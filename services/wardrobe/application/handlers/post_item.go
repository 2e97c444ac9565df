package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/errhttp"
	"github.com/ghuser/capsule/pkg/httpx"
	pkgvalidator "github.com/ghuser/capsule/pkg/validator"
	appsvcs "github.com/ghuser/capsule/services/wardrobe/application/services"
)

// CreateItemRequest is the request body for POST /items. Price and
// date_purchased arrive as strings straight from form inputs.
type CreateItemRequest struct {
	Name          string `json:"name"            validate:"required,max=255"        example:"Linen Shirt"`
	ImageURLFront string `json:"image_url_front" validate:"required,url"            example:"http://localhost:9000/capsule/abc.jpg"`
	ImageURLBack  string `json:"image_url_back"  validate:"required,url"            example:"http://localhost:9000/capsule/def.jpg"`
	Brand         string `json:"brand"           validate:"omitempty,max=255"       example:"Acme"`
	Type          string `json:"type"            validate:"omitempty,max=255"       example:"shirt"`
	Color         string `json:"color"           validate:"omitempty,max=255"       example:"white"`
	Description   string `json:"description"     validate:"omitempty,max=2000"      example:"Lightweight summer shirt"`
	Size          string `json:"size"            validate:"omitempty,max=50"        example:"M"`
	Price         string `json:"price"           validate:"omitempty"               example:"49.99"`
	DatePurchased string `json:"date_purchased"  validate:"omitempty"               example:"2024-03-15"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new clothing item owned by the session user.
//
//	@Summary		Create clothing item
//	@Description	Creates a new clothing item with front and back image URLs
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	cmd := appsvcs.CreateItemCommand{
		Name:          req.Name,
		ImageURLFront: req.ImageURLFront,
		ImageURLBack:  req.ImageURLBack,
		Brand:         optional(req.Brand),
		Type:          optional(req.Type),
		Color:         optional(req.Color),
		Description:   optional(req.Description),
		Size:          optional(req.Size),
	}

	fields := pkgvalidator.FieldErrors{}
	if req.Price != "" {
		price, err := strconv.ParseFloat(req.Price, 64)
		if err != nil || price <= 0 {
			fields["price"] = append(fields["price"], "price must be a positive number")
		} else {
			cmd.Price = &price
		}
	}
	if req.DatePurchased != "" {
		date, err := time.Parse(dateLayout, req.DatePurchased)
		if err != nil {
			fields["date_purchased"] = append(fields["date_purchased"], "date_purchased must be a YYYY-MM-DD date")
		} else {
			date = date.UTC()
			cmd.DatePurchased = &date
		}
	}
	if len(fields) > 0 {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed.",
			"fields": fields,
		})
		return
	}

	item, err := h.svc.Item.Create(r.Context(), userID, cmd)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

// optional maps an empty form string to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
