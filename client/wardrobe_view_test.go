package client

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory ItemAPI with switchable failure modes.
type fakeAPI struct {
	items       map[uuid.UUID]*Item
	order       []uuid.UUID // newest first
	toggleErr   error
	toggleCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: make(map[uuid.UUID]*Item)}
}

func (f *fakeAPI) seed(inCapsule bool) Item {
	item := Item{ID: uuid.New(), Name: "Item", InCapsule: inCapsule,
		ImageURLFront: "http://store/front.jpg", ImageURLBack: "http://store/back.jpg"}
	f.items[item.ID] = &item
	f.order = append([]uuid.UUID{item.ID}, f.order...)
	return item
}

func (f *fakeAPI) ListItems(_ context.Context) ([]Item, error) {
	out := make([]Item, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.items[id])
	}
	return out, nil
}

func (f *fakeAPI) CreateItem(_ context.Context, params CreateItemParams) (*Item, error) {
	item := Item{ID: uuid.New(), Name: params.Name,
		ImageURLFront: params.ImageURLFront, ImageURLBack: params.ImageURLBack}
	f.items[item.ID] = &item
	f.order = append([]uuid.UUID{item.ID}, f.order...)
	cp := item
	return &cp, nil
}

func (f *fakeAPI) UpdateItem(_ context.Context, id uuid.UUID, params UpdateItemParams) (*Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, &APIError{StatusCode: 404, Message: "item not found"}
	}
	if name, ok := params["name"].(string); ok {
		item.Name = name
	}
	cp := *item
	return &cp, nil
}

func (f *fakeAPI) DeleteItem(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return &APIError{StatusCode: 404, Message: "item not found"}
	}
	delete(f.items, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) ToggleCapsule(_ context.Context, id uuid.UUID) (*ToggleResult, error) {
	f.toggleCalls++
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	item, ok := f.items[id]
	if !ok {
		return nil, &APIError{StatusCode: 404, Message: "item not found"}
	}
	item.InCapsule = !item.InCapsule
	msg := "Item removed from capsule."
	if item.InCapsule {
		msg = "Item added to capsule."
	}
	return &ToggleResult{InCapsule: item.InCapsule, Message: msg}, nil
}

func loadedView(t *testing.T, api *fakeAPI) *WardrobeView {
	t.Helper()
	v := NewWardrobeView(api)
	require.NoError(t, v.Load(context.Background()))
	return v
}

func TestWardrobeView_FiltersArePure(t *testing.T) {
	api := newFakeAPI()
	attic := api.seed(false)
	capsule := api.seed(true)
	v := loadedView(t, api)

	all := v.Items(FilterAll)
	require.Len(t, all, 2)

	inCapsule := v.Items(FilterCapsule)
	require.Len(t, inCapsule, 1)
	assert.Equal(t, capsule.ID, inCapsule[0].ID)

	inAttic := v.Items(FilterAttic)
	require.Len(t, inAttic, 1)
	assert.Equal(t, attic.ID, inAttic[0].ID)

	// filters never mutate the collection
	inCapsule[0].InCapsule = false
	assert.Len(t, v.Items(FilterCapsule), 1)
}

func TestWardrobeView_Add_PrependsNewest(t *testing.T) {
	api := newFakeAPI()
	api.seed(false)
	v := loadedView(t, api)

	created, err := v.Add(context.Background(), CreateItemParams{
		Name:          "New Coat",
		ImageURLFront: "http://store/f.jpg",
		ImageURLBack:  "http://store/b.jpg",
	})
	require.NoError(t, err)

	all := v.Items(FilterAll)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID, "new items render first")
}

func TestWardrobeView_Toggle_DoubleToggleRestores(t *testing.T) {
	api := newFakeAPI()
	item := api.seed(false)
	v := loadedView(t, api)

	msg, err := v.Toggle(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Item added to capsule.", msg)
	assert.True(t, v.Items(FilterAll)[0].InCapsule)

	msg, err = v.Toggle(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Item removed from capsule.", msg)
	assert.False(t, v.Items(FilterAll)[0].InCapsule, "two toggles restore the original state")
}

func TestWardrobeView_Toggle_RevertsOnFailure(t *testing.T) {
	api := newFakeAPI()
	item := api.seed(false)
	v := loadedView(t, api)

	api.toggleErr = errors.New("network down")
	_, err := v.Toggle(context.Background(), item.ID)
	require.Error(t, err)

	assert.False(t, v.Items(FilterAll)[0].InCapsule, "failed toggle must compensate the optimistic flip")
	assert.False(t, v.IsToggling(item.ID))
}

func TestWardrobeView_Toggle_UnknownItem(t *testing.T) {
	v := loadedView(t, newFakeAPI())

	_, err := v.Toggle(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestWardrobeView_Apply_ReplacesLocalCopy(t *testing.T) {
	api := newFakeAPI()
	item := api.seed(false)
	v := loadedView(t, api)

	updated, err := v.Apply(context.Background(), item.ID, UpdateItemParams{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Renamed", v.Items(FilterAll)[0].Name)
}

func TestWardrobeView_Remove_ClosesEditor(t *testing.T) {
	api := newFakeAPI()
	item := api.seed(false)
	v := loadedView(t, api)

	v.OpenEditor(item.ID)
	_, open := v.Editing()
	require.True(t, open)

	require.NoError(t, v.Remove(context.Background(), item.ID))
	assert.Empty(t, v.Items(FilterAll))
	_, open = v.Editing()
	assert.False(t, open, "removing the edited item closes the dialog")
}

func TestWardrobeView_EditorState(t *testing.T) {
	api := newFakeAPI()
	first := api.seed(false)
	second := api.seed(false)
	v := loadedView(t, api)

	_, open := v.Editing()
	assert.False(t, open)

	v.OpenEditor(first.ID)
	id, open := v.Editing()
	assert.True(t, open)
	assert.Equal(t, first.ID, id)

	// opening another dialog closes the previous one
	v.OpenEditor(second.ID)
	id, _ = v.Editing()
	assert.Equal(t, second.ID, id)

	v.CloseEditor()
	_, open = v.Editing()
	assert.False(t, open)
}
