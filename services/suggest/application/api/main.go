package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/services/suggest/application/handlers"
	appsvcs "github.com/ghuser/capsule/services/suggest/application/services"
)

// SuggestRoutes registers the analysis endpoint on the provided chi router.
func SuggestRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		r.Post("/ai/analyze-item", handlers.NewAnalyzeItemHandler(svcs).Execute)
	})
}
