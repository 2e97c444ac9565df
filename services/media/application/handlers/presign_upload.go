package handlers

import (
	"net/http"

	"github.com/ghuser/capsule/pkg/errhttp"
	"github.com/ghuser/capsule/pkg/httpx"
	pkgvalidator "github.com/ghuser/capsule/pkg/validator"
	appsvcs "github.com/ghuser/capsule/services/media/application/services"
)

// PresignUploadRequest is the request body for POST /uploads/presign.
type PresignUploadRequest struct {
	ContentType   string `json:"content_type"   validate:"required,startswith=image/" example:"image/jpeg"`
	FileExtension string `json:"file_extension" validate:"required,max=10,alphanum"   example:"jpg"`
} // @name PresignUploadRequest

// PresignUploadResponse carries the write grant and the permanent URL the
// client should store once the upload completes.
type PresignUploadResponse struct {
	UploadURL string `json:"upload_url" example:"http://localhost:9000/capsule/abc.jpg?X-Amz-Signature=..."`
	PublicURL string `json:"public_url" example:"http://localhost:9000/capsule/abc.jpg"`
} // @name PresignUploadResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"image URL does not belong to the configured store"`
} // @name ErrorResponse

// PresignUploadHandler handles POST /uploads/presign requests.
type PresignUploadHandler struct {
	svc *appsvcs.Services
}

// NewPresignUploadHandler returns a PresignUploadHandler backed by the given services.
func NewPresignUploadHandler(svc *appsvcs.Services) *PresignUploadHandler {
	return &PresignUploadHandler{svc: svc}
}

// Execute issues a time-boxed PUT grant for a fresh random object key.
//
//	@Summary		Presign image upload
//	@Description	Issues a 10-minute presigned PUT URL; the client uploads directly to storage
//	@Tags			media
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PresignUploadRequest	true	"Upload descriptor"
//	@Success		200		{object}	PresignUploadResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/uploads/presign [post]
func (h *PresignUploadHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PresignUploadRequest](w, r)
	if !ok {
		return
	}

	grant, err := h.svc.Media.PresignUpload(r.Context(), req.ContentType, req.FileExtension)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, PresignUploadResponse{
		UploadURL: grant.UploadURL,
		PublicURL: grant.PublicURL,
	})
}
