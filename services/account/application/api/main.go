package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/pkg/auth"
	"github.com/ghuser/capsule/pkg/config"
	"github.com/ghuser/capsule/services/account/application/handlers"
	appsvcs "github.com/ghuser/capsule/services/account/application/services"
)

// AuthRoutes registers sign-in, sign-out, and session endpoints on the
// provided chi router.
func AuthRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	secure := a.Cfg.Environment == config.EnvProduction

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", handlers.NewLoginHandler(svcs, secure).Execute)
		r.Get("/callback", handlers.NewCallbackHandler(svcs, a.SessionStore, a.Logger, secure).Execute)
		r.Post("/logout", handlers.NewLogoutHandler(a.SessionStore).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
			r.Get("/me", handlers.NewMeHandler().Execute)
		})
	})
}
