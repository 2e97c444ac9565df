package handlers

import (
	"net/http"

	"github.com/ghuser/capsule/pkg/errhttp"
	"github.com/ghuser/capsule/pkg/httpx"
	pkgvalidator "github.com/ghuser/capsule/pkg/validator"
	appsvcs "github.com/ghuser/capsule/services/media/application/services"
)

// PresignDownloadRequest is the request body for POST /uploads/presign-get.
type PresignDownloadRequest struct {
	URL string `json:"url" validate:"required,url" example:"http://localhost:9000/capsule/abc.jpg"`
} // @name PresignDownloadRequest

// PresignDownloadResponse carries a temporary signed GET URL.
type PresignDownloadResponse struct {
	URL string `json:"url" example:"http://localhost:9000/capsule/abc.jpg?X-Amz-Signature=..."`
} // @name PresignDownloadResponse

// PresignDownloadHandler handles POST /uploads/presign-get requests.
type PresignDownloadHandler struct {
	svc *appsvcs.Services
}

// NewPresignDownloadHandler returns a PresignDownloadHandler backed by the given services.
func NewPresignDownloadHandler(svc *appsvcs.Services) *PresignDownloadHandler {
	return &PresignDownloadHandler{svc: svc}
}

// Execute resolves a stored permanent image URL to a 1-hour signed GET URL.
// URLs outside the configured bucket are rejected with 400.
//
//	@Summary		Presign image download
//	@Description	Resolves a stored permanent URL to a temporary signed GET URL
//	@Tags			media
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PresignDownloadRequest	true	"Stored permanent URL"
//	@Success		200		{object}	PresignDownloadResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/uploads/presign-get [post]
func (h *PresignDownloadHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PresignDownloadRequest](w, r)
	if !ok {
		return
	}

	signed, err := h.svc.Media.PresignDownload(r.Context(), req.URL)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, PresignDownloadResponse{URL: signed})
}
