package services

import (
	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/pkg/cache"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Media *MediaService
}

// New wires all media application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	grants := cache.NewGrantCache(a.Redis)
	return &Services{
		Media: NewMediaService(a.Storage, grants, a.Logger),
	}
}
