// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/httpx"
	"github.com/ghuser/capsule/pkg/objstore"
	accountdomain "github.com/ghuser/capsule/services/account/domain"
	suggestdomain "github.com/ghuser/capsule/services/suggest/domain"
	wardrobedomain "github.com/ghuser/capsule/services/wardrobe/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
//
// Client-caused failures (4xx) carry their error message; domain validation
// failures render the same field map shape the request validator uses. On
// 5xx the full error goes to the server log and the body stays generic, with
// one exception: the analysis-failure message is part of the API contract.
func WriteError(w http.ResponseWriter, err error) {
	var verr *wardrobedomain.ValidationError
	if errors.As(err, &verr) {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed.",
			"fields": verr.Fields,
		})
		return
	}

	status := mapErrorToStatus(err)
	if status < http.StatusInternalServerError {
		httpx.JSONError(w, status, err.Error())
		return
	}

	if errors.Is(err, suggestdomain.ErrAnalysisFailed) {
		httpx.JSONError(w, status, suggestdomain.ErrAnalysisFailed.Error())
		return
	}

	slog.Error("request failed", "error", err)
	httpx.JSONError(w, status, http.StatusText(status))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrUserIDNotFound):
		return http.StatusUnauthorized // 401
	case errors.Is(err, wardrobedomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, wardrobedomain.ErrInvalidItem):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, objstore.ErrForeignURL):
		return http.StatusBadRequest // 400
	case errors.Is(err, accountdomain.ErrEmailNotAllowed):
		return http.StatusForbidden // 403
	case errors.Is(err, suggestdomain.ErrAnalysisFailed):
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}
