package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/services/wardrobe/application/handlers"
	appsvcs "github.com/ghuser/capsule/services/wardrobe/application/services"
)

// ItemRoutes registers wardrobe endpoints on the provided chi router.
// Listing is tolerant of anonymous callers; every mutation requires a session.
func ItemRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/items", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(a.SessionStore, a.Logger))
			r.Get("/", handlers.NewGetItemsHandler(svcs, a.Logger).Execute)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Patch("/{id}", handlers.NewPatchItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
			r.Post("/{id}/capsule", handlers.NewToggleCapsuleHandler(svcs).Execute)
		})
	})
}
