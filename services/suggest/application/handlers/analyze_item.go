package handlers

import (
	"net/http"

	"github.com/ghuser/capsule/pkg/errhttp"
	"github.com/ghuser/capsule/pkg/httpx"
	pkgvalidator "github.com/ghuser/capsule/pkg/validator"
	appsvcs "github.com/ghuser/capsule/services/suggest/application/services"
)

// AnalyzeItemRequest is the request body for POST /ai/analyze-item. Both URLs
// are the stored permanent form; the server derives signed URLs internally.
type AnalyzeItemRequest struct {
	ImageURLFront string `json:"image_url_front" validate:"required,url" example:"http://localhost:9000/capsule/abc.jpg"`
	ImageURLBack  string `json:"image_url_back"  validate:"required,url" example:"http://localhost:9000/capsule/def.jpg"`
} // @name AnalyzeItemRequest

// AnalyzeItemResponse is the model's metadata proposal. Undeterminable
// fields are empty strings.
type AnalyzeItemResponse struct {
	Brand       string `json:"brand"       example:"Acme"`
	Type        string `json:"type"        example:"shirt"`
	Color       string `json:"color"       example:"white"`
	Description string `json:"description" example:"Lightweight linen shirt with a relaxed fit."`
} // @name AnalyzeItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"AI analysis failed"`
} // @name ErrorResponse

// AnalyzeItemHandler handles POST /ai/analyze-item requests.
type AnalyzeItemHandler struct {
	svc *appsvcs.Services
}

// NewAnalyzeItemHandler returns an AnalyzeItemHandler backed by the given services.
func NewAnalyzeItemHandler(svc *appsvcs.Services) *AnalyzeItemHandler {
	return &AnalyzeItemHandler{svc: svc}
}

// Execute analyzes a pair of garment photos and proposes item metadata.
//
//	@Summary		Analyze clothing item
//	@Description	Runs a vision model over the front and back photos and suggests brand, type, color, and description
//	@Tags			suggest
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AnalyzeItemRequest	true	"Stored image URLs"
//	@Success		200		{object}	AnalyzeItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/ai/analyze-item [post]
func (h *AnalyzeItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AnalyzeItemRequest](w, r)
	if !ok {
		return
	}

	suggestion, err := h.svc.Suggest.AnalyzeItem(r.Context(), req.ImageURLFront, req.ImageURLBack)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AnalyzeItemResponse{
		Brand:       suggestion.Brand,
		Type:        suggestion.Type,
		Color:       suggestion.Color,
		Description: suggestion.Description,
	})
}
