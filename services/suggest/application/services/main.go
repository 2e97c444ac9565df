package services

import (
	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/services/suggest/infrastructure/vision"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Suggest *SuggestService
}

// New wires all suggest application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	analyzer := vision.NewAnalyzer(a.Cfg)
	return &Services{
		Suggest: NewSuggestService(a.Storage, analyzer),
	}
}
