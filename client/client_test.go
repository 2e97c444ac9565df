package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateItem(t *testing.T) {
	itemID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/items", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Blue Jacket", body["name"])
		assert.Equal(t, "29.99", body["price"])
		_, hasBrand := body["brand"]
		assert.False(t, hasBrand, "empty optional fields must be omitted")

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": itemID, "name": "Blue Jacket", "price": 29.99, "in_capsule": false,
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	item, err := c.CreateItem(context.Background(), CreateItemParams{
		Name:          "Blue Jacket",
		ImageURLFront: "http://store/f.jpg",
		ImageURLBack:  "http://store/b.jpg",
		Price:         "29.99",
	})
	require.NoError(t, err)
	assert.Equal(t, itemID, item.ID)
	require.NotNil(t, item.Price)
	assert.InDelta(t, 29.99, *item.Price, 0.0001)
	assert.False(t, item.InCapsule)
}

func TestClient_ValidationErrorExposed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":  "Validation failed.",
			"fields": map[string][]string{"name": {"name is required"}},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.CreateItem(context.Background(), CreateItemParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Validation failed.", apiErr.Message)
	assert.Contains(t, apiErr.Fields, "name")
}

func TestClient_UpdateItem_NullClearsField(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/items/"+id.String(), r.URL.Path)

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "null", string(raw["color"]), "explicit null must survive encoding")
		_, hasBrand := raw["brand"]
		assert.False(t, hasBrand, "absent keys must stay absent")

		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "name": "Item"})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.UpdateItem(context.Background(), id, UpdateItemParams{"color": nil})
	require.NoError(t, err)
}

func TestClient_ToggleCapsule(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/items/"+id.String()+"/capsule", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"in_capsule": true, "message": "Item added to capsule.",
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	result, err := c.ToggleCapsule(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, result.InCapsule)
	assert.Equal(t, "Item added to capsule.", result.Message)
}

func TestClient_SessionCookiePersists(t *testing.T) {
	var sawCookie atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/callback":
			http.SetCookie(w, &http.Cookie{Name: "capsule_session", Value: "s3ss10n", Path: "/"})
			_ = json.NewEncoder(w).Encode(map[string]string{})
		case "/items":
			if c, err := r.Cookie("capsule_session"); err == nil && c.Value == "s3ss10n" {
				sawCookie.Store(true)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/auth/callback", nil, nil))
	_, err = c.ListItems(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie.Load(), "session cookie must be replayed on later calls")
}

type grantStub struct {
	fail map[string]bool
}

func (g *grantStub) RequestDownloadGrant(_ context.Context, storedURL string) (string, error) {
	if g.fail[storedURL] {
		return "", &APIError{StatusCode: 400, Message: "bad url"}
	}
	return storedURL + "?signed=1", nil
}

func TestResolveImageGrants_IndependentFailures(t *testing.T) {
	ok := Item{ID: uuid.New(), ImageURLFront: "http://store/a.jpg"}
	bad := Item{ID: uuid.New(), ImageURLFront: "http://elsewhere/b.jpg"}
	other := Item{ID: uuid.New(), ImageURLFront: "http://store/c.jpg"}

	api := &grantStub{fail: map[string]bool{bad.ImageURLFront: true}}
	grants := ResolveImageGrants(context.Background(), api, []Item{ok, bad, other})

	assert.Equal(t, "http://store/a.jpg?signed=1", grants[ok.ID])
	assert.Equal(t, "http://store/c.jpg?signed=1", grants[other.ID])
	_, found := grants[bad.ID]
	assert.False(t, found, "one failed grant must not block the others")
}
