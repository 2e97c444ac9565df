package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/capsule/services/wardrobe/domain/models"
)

// ItemRepository is the persistence interface for the ClothingItem aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Every operation is scoped to the owning user: a row that exists but belongs
// to another user behaves exactly like a missing row (ErrItemNotFound).
type ItemRepository interface {
	Save(ctx context.Context, item *models.ClothingItem) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.ClothingItem, error)

	// FindByUserID retrieves all items for the given user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ClothingItem, error)

	// Update persists the mutable detail fields of an existing item.
	// Image URLs and InCapsule are never written through this path.
	Update(ctx context.Context, item *models.ClothingItem) error

	// Delete permanently removes an item by ID scoped to the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// ToggleCapsule flips the item's InCapsule flag in a single statement
	// (last write wins — there is no version guard) and returns the new value.
	ToggleCapsule(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
