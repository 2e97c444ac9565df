package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Filter selects which slice of the collection a view renders. Views are
// pure filters over one in-memory collection, never separately fetched.
type Filter int

const (
	FilterAll Filter = iota
	FilterCapsule
	FilterAttic
)

// ItemAPI is the subset of Client the view-model drives.
type ItemAPI interface {
	ListItems(ctx context.Context) ([]Item, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, params UpdateItemParams) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ToggleCapsule(ctx context.Context, id uuid.UUID) (*ToggleResult, error)
}

// WardrobeView owns the client-side item collection. All mutations go
// through its entry points; the collection is never shared as raw state.
//
// Toggle is optimistic: the local flip is applied before the command is
// sent, and on failure the inverse flip is applied as a compensating action.
// Two rapid toggles on the same item race on the optimistic state; the
// server resolves them last-write-wins.
type WardrobeView struct {
	api ItemAPI

	mu       sync.Mutex
	items    []Item // newest first, mirroring the server's list order
	toggling map[uuid.UUID]bool
	editing  *uuid.UUID // item whose edit dialog is open, nil when closed
}

// NewWardrobeView creates an empty view over the given API.
func NewWardrobeView(api ItemAPI) *WardrobeView {
	return &WardrobeView{
		api:      api,
		toggling: make(map[uuid.UUID]bool),
	}
}

// Load replaces the collection with the server's current list.
func (v *WardrobeView) Load(ctx context.Context) error {
	items, err := v.api.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("load wardrobe: %w", err)
	}
	v.mu.Lock()
	v.items = items
	v.mu.Unlock()
	return nil
}

// Items returns the collection filtered for the given view. The result is a
// copy; mutating it does not affect the view state.
func (v *WardrobeView) Items(filter Filter) []Item {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]Item, 0, len(v.items))
	for _, item := range v.items {
		switch filter {
		case FilterCapsule:
			if !item.InCapsule {
				continue
			}
		case FilterAttic:
			if item.InCapsule {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// Add creates an item and prepends it to the collection (newest first).
func (v *WardrobeView) Add(ctx context.Context, params CreateItemParams) (*Item, error) {
	item, err := v.api.CreateItem(ctx, params)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.items = append([]Item{*item}, v.items...)
	v.mu.Unlock()
	return item, nil
}

// Apply sends a partial update and replaces the local copy with the
// server's authoritative result.
func (v *WardrobeView) Apply(ctx context.Context, id uuid.UUID, params UpdateItemParams) (*Item, error) {
	item, err := v.api.UpdateItem(ctx, id, params)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	for i := range v.items {
		if v.items[i].ID == id {
			v.items[i] = *item
			break
		}
	}
	v.mu.Unlock()
	return item, nil
}

// Remove deletes an item and drops it from the collection. Closes the edit
// dialog if it was open on the removed item.
func (v *WardrobeView) Remove(ctx context.Context, id uuid.UUID) error {
	if err := v.api.DeleteItem(ctx, id); err != nil {
		return err
	}
	v.mu.Lock()
	for i := range v.items {
		if v.items[i].ID == id {
			v.items = append(v.items[:i], v.items[i+1:]...)
			break
		}
	}
	if v.editing != nil && *v.editing == id {
		v.editing = nil
	}
	v.mu.Unlock()
	return nil
}

// Toggle flips an item's capsule membership optimistically and returns the
// confirmation message for the transition. On command failure the local
// flip is compensated with the inverse flip and the error returned.
func (v *WardrobeView) Toggle(ctx context.Context, id uuid.UUID) (string, error) {
	if !v.flip(id) {
		return "", fmt.Errorf("toggle: item %s not in collection", id)
	}
	v.setToggling(id, true)
	defer v.setToggling(id, false)

	result, err := v.api.ToggleCapsule(ctx, id)
	if err != nil {
		v.flip(id) // compensating action: apply the inverse projection
		return "", err
	}

	// Adopt the server's state; under racing toggles the server wins.
	v.mu.Lock()
	for i := range v.items {
		if v.items[i].ID == id {
			v.items[i].InCapsule = result.InCapsule
			break
		}
	}
	v.mu.Unlock()
	return result.Message, nil
}

// IsToggling reports whether a toggle command for the item is in flight.
func (v *WardrobeView) IsToggling(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.toggling[id]
}

// OpenEditor marks the item's edit dialog as open. Only one dialog is open
// at a time; opening another closes the previous one.
func (v *WardrobeView) OpenEditor(id uuid.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = &id
}

// CloseEditor closes the edit dialog.
func (v *WardrobeView) CloseEditor() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = nil
}

// Editing returns the item whose edit dialog is open, if any.
func (v *WardrobeView) Editing() (uuid.UUID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.editing == nil {
		return uuid.Nil, false
	}
	return *v.editing, true
}

// flip inverts the local InCapsule projection for id. Returns false when the
// item is not in the collection.
func (v *WardrobeView) flip(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.items {
		if v.items[i].ID == id {
			v.items[i].InCapsule = !v.items[i].InCapsule
			return true
		}
	}
	return false
}

func (v *WardrobeView) setToggling(id uuid.UUID, on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if on {
		v.toggling[id] = true
	} else {
		delete(v.toggling, id)
	}
}
