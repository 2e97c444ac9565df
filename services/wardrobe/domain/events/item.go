package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for wardrobe item lifecycle events.
const (
	TopicItemCreated = "wardrobe.item.created"
	TopicItemDeleted = "wardrobe.item.deleted"
)

// ItemCreatedEvent is published after a new ClothingItem is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
// The stored image URLs let consumers pre-warm derived state (download
// grants) before the item is first rendered.
type ItemCreatedEvent struct {
	EventID       uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version       int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID        uuid.UUID `json:"item_id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	ImageURLFront string    `json:"image_url_front"`
	ImageURLBack  string    `json:"image_url_back"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after a ClothingItem is permanently removed.
// It carries the stored image URLs so consumers can evict derived state
// (cached download grants) for the deleted images.
type ItemDeletedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Version       int       `json:"version"`
	ItemID        uuid.UUID `json:"item_id"`
	UserID        uuid.UUID `json:"user_id"`
	ImageURLFront string    `json:"image_url_front"`
	ImageURLBack  string    `json:"image_url_back"`
	OccurredAt    time.Time `json:"occurred_at"`
}
