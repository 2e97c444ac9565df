package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	wardrobedomain "github.com/ghuser/capsule/services/wardrobe/domain"
	"github.com/ghuser/capsule/services/wardrobe/domain/models"
	"github.com/ghuser/capsule/services/wardrobe/domain/repositories"
	domainsvcs "github.com/ghuser/capsule/services/wardrobe/domain/services"
)

// Toggle result messages, worded by the direction of the transition performed.
const (
	MsgAddedToCapsule     = "Item added to capsule."
	MsgRemovedFromCapsule = "Item removed from capsule."
)

// CreateItemCommand carries the validated fields for item creation.
// Structural validation (required name, well-formed URLs) happens at the
// HTTP boundary; this command holds already-parsed values.
type CreateItemCommand struct {
	Name          string
	ImageURLFront string
	ImageURLBack  string
	Brand         *string
	Type          *string
	Color         *string
	Description   *string
	Size          *string
	Price         *float64
	DatePurchased *time.Time
}

// FieldChange is a tri-state update field: unchanged, cleared, or set.
type FieldChange[T any] struct {
	Changed bool
	Value   *T // nil with Changed=true clears the field
}

// Keep returns a FieldChange that leaves the field unchanged.
func Keep[T any]() FieldChange[T] { return FieldChange[T]{} }

// Clear returns a FieldChange that sets the field to null.
func Clear[T any]() FieldChange[T] { return FieldChange[T]{Changed: true} }

// Set returns a FieldChange carrying a new value.
func Set[T any](v T) FieldChange[T] { return FieldChange[T]{Changed: true, Value: &v} }

// UpdateItemCommand is a partial update. Image URLs are fixed at creation and
// deliberately absent here; InCapsule changes only through ToggleCapsule.
type UpdateItemCommand struct {
	Name          FieldChange[string]
	Brand         FieldChange[string]
	Type          FieldChange[string]
	Color         FieldChange[string]
	Description   FieldChange[string]
	Size          FieldChange[string]
	Price         FieldChange[string] // raw string; normalized leniently, see NormalizePrice
	DatePurchased FieldChange[string] // raw "2006-01-02" string; normalized leniently
}

// ItemService orchestrates the ClothingItem lifecycle. Event publishing is
// handled by the repository layer (transactional outbox).
type ItemService struct {
	repo repositories.ItemRepository
}

// NewItemService returns an ItemService wired with the given repository.
func NewItemService(repo repositories.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// Create validates and persists a new item owned by userID. The repository
// publishes ItemCreatedEvent in the same transaction.
func (s *ItemService) Create(ctx context.Context, userID uuid.UUID, cmd CreateItemCommand) (*models.ClothingItem, error) {
	itemName, err := models.NewItemName(cmd.Name)
	if err != nil {
		return nil, wardrobedomain.NewValidationError("name", err.Error())
	}

	item, err := models.NewClothingItem(userID, itemName, cmd.ImageURLFront, cmd.ImageURLBack)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	item.Brand = cmd.Brand
	item.Type = cmd.Type
	item.Color = cmd.Color
	item.Description = cmd.Description
	item.Size = cmd.Size
	item.Price = cmd.Price
	item.DatePurchased = cmd.DatePurchased

	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	return item, nil
}

// List returns all items owned by userID, newest first.
func (s *ItemService) List(ctx context.Context, userID uuid.UUID) ([]*models.ClothingItem, error) {
	items, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update loads the item (which doubles as the ownership check), applies the
// partial command, and persists. Returns ErrItemNotFound for rows that are
// missing or owned by another user — before any validation runs.
func (s *ItemService) Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateItemCommand) (*models.ClothingItem, error) {
	item, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}

	if cmd.Name.Changed {
		name := ""
		if cmd.Name.Value != nil {
			name = *cmd.Name.Value
		}
		itemName, err := models.NewItemName(name)
		if err != nil {
			return nil, wardrobedomain.NewValidationError("name", err.Error())
		}
		if err := domainsvcs.ValidateName(itemName); err != nil {
			return nil, wardrobedomain.NewValidationError("name", err.Error())
		}
		item.Name = itemName
	}

	applyChange(&item.Brand, cmd.Brand)
	applyChange(&item.Type, cmd.Type)
	applyChange(&item.Color, cmd.Color)
	applyChange(&item.Description, cmd.Description)
	applyChange(&item.Size, cmd.Size)

	if cmd.Price.Changed {
		item.Price = NormalizePrice(cmd.Price.Value)
	}
	if cmd.DatePurchased.Changed {
		item.DatePurchased = NormalizeDate(cmd.DatePurchased.Value)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete permanently removes the item after the repository's ownership check.
func (s *ItemService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ToggleCapsule flips the item's capsule membership and returns the new value
// plus a message matching the direction of the transition.
func (s *ItemService) ToggleCapsule(ctx context.Context, userID, id uuid.UUID) (bool, string, error) {
	inCapsule, err := s.repo.ToggleCapsule(ctx, userID, id)
	if err != nil {
		return false, "", fmt.Errorf("toggle capsule: %w", err)
	}
	msg := MsgRemovedFromCapsule
	if inCapsule {
		msg = MsgAddedToCapsule
	}
	return inCapsule, msg, nil
}

// applyChange applies a tri-state FieldChange to an optional string field.
// Empty strings are treated as a clear, matching the form semantics where an
// emptied input means "no value".
func applyChange(dst **string, change FieldChange[string]) {
	if !change.Changed {
		return
	}
	if change.Value == nil || *change.Value == "" {
		*dst = nil
		return
	}
	v := *change.Value
	*dst = &v
}

// NormalizePrice parses a raw price string leniently: nil, empty, unparsable,
// or non-positive input all normalize to nil (a no-op clear) rather than an
// error. Creation is strict about positivity; updates are not.
func NormalizePrice(raw *string) *float64 {
	if raw == nil || *raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil || f <= 0 {
		return nil
	}
	return &f
}

// NormalizeDate parses a raw "2006-01-02" date string leniently: nil, empty,
// or unparsable input normalizes to nil rather than an error.
func NormalizeDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
