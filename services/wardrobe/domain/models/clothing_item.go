package models

import (
	"time"

	"github.com/google/uuid"
)

// ClothingItem is the core aggregate for the wardrobe bounded context.
// Optional attributes are pointers: nil means "not set" and persists as NULL.
//
// ImageURLFront/ImageURLBack are permanent object-store URLs fixed at
// creation; updates never touch them. InCapsule partitions a user's items
// into "capsule" (true) and "attic" (false).
type ClothingItem struct {
	ID            uuid.UUID
	UserID        uuid.UUID // owner scope — always filter by this in queries
	Name          ItemName
	Brand         *string
	Type          *string
	Color         *string
	Description   *string
	Size          *string
	ImageURLFront string
	ImageURLBack  string
	Price         *float64
	DatePurchased *time.Time
	InCapsule     bool
	CreatedAt     time.Time
}

// NewClothingItem constructs a valid ClothingItem aggregate with generated ID,
// current timestamp, and InCapsule defaulted to false.
func NewClothingItem(userID uuid.UUID, name ItemName, imageURLFront, imageURLBack string) (*ClothingItem, error) {
	return &ClothingItem{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		ImageURLFront: imageURLFront,
		ImageURLBack:  imageURLBack,
		InCapsule:     false,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
