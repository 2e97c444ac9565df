package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/services/media/application/handlers"
	appsvcs "github.com/ghuser/capsule/services/media/application/services"
)

// MediaRoutes registers presign endpoints on the provided chi router.
// Both grant types require a session; anonymous users have nothing to sign.
func MediaRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		r.Route("/uploads", func(r chi.Router) {
			r.Post("/presign", handlers.NewPresignUploadHandler(svcs).Execute)
			r.Post("/presign-get", handlers.NewPresignDownloadHandler(svcs).Execute)
		})
	})
}
