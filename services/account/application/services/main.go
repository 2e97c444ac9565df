package services

import (
	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/pkg/auth"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Account *AccountService
}

// New wires all account application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	provider := auth.NewGoogleProvider(
		a.Cfg.GoogleClientID,
		a.Cfg.GoogleClientSecret,
		a.Cfg.OAuthCallbackURL,
	)
	return &Services{
		Account: NewAccountService(provider, a.Cfg.AllowedUserEmails()),
	}
}
