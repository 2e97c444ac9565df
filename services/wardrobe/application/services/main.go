package services

import (
	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/services/wardrobe/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all wardrobe application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.EventBus)
	return &Services{
		Item: NewItemService(repo),
	}
}
