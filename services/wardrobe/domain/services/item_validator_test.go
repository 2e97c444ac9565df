package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	wardrobedomain "github.com/ghuser/capsule/services/wardrobe/domain"
	"github.com/ghuser/capsule/services/wardrobe/domain/models"
)

func validItem(t *testing.T) *models.ClothingItem {
	t.Helper()
	item, err := models.NewClothingItem(
		uuid.New(),
		models.ItemName("Blue Jacket"),
		"http://localhost:9000/capsule-images/front.jpg",
		"http://localhost:9000/capsule-images/back.jpg",
	)
	if err != nil {
		t.Fatalf("build item: %v", err)
	}
	return item
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "Blue Jacket", false},
		{"inner whitespace ok", "Blue  Jacket", false},
		{"control character", "Blue\x00Jacket", true},
		{"newline", "Blue\nJacket", true},
		{"unicode ok", "Veste Bleue Été", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(models.ItemName(tt.value))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	if err := ValidateImageURL("http://localhost:9000/capsule-images/a.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "not-a-url", "/relative/path", "://missing-scheme"} {
		if err := ValidateImageURL(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestValidateItemForCreation(t *testing.T) {
	t.Run("valid item passes", func(t *testing.T) {
		if err := ValidateItemForCreation(validItem(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil item rejected", func(t *testing.T) {
		if err := ValidateItemForCreation(nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("zero price rejected", func(t *testing.T) {
		item := validItem(t)
		price := 0.0
		item.Price = &price
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for non-positive price")
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		item := validItem(t)
		price := -5.0
		item.Price = &price
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for negative price")
		}
	})

	t.Run("positive price accepted", func(t *testing.T) {
		item := validItem(t)
		price := 29.99
		item.Price = &price
		if err := ValidateItemForCreation(item); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing back image rejected", func(t *testing.T) {
		item := validItem(t)
		item.ImageURLBack = ""
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for missing back image")
		}
	})

	t.Run("missing user rejected", func(t *testing.T) {
		item := validItem(t)
		item.UserID = uuid.Nil
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for missing user_id")
		}
	})

	t.Run("field failures accumulate in field map", func(t *testing.T) {
		item := validItem(t)
		item.ImageURLBack = ""
		price := -5.0
		item.Price = &price

		err := ValidateItemForCreation(item)
		if !errors.Is(err, wardrobedomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
		var verr *wardrobedomain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %T", err)
		}
		if _, ok := verr.Fields["image_url_back"]; !ok {
			t.Errorf("expected image_url_back in field map, got %v", verr.Fields)
		}
		if _, ok := verr.Fields["price"]; !ok {
			t.Errorf("expected price in field map, got %v", verr.Fields)
		}
	})
}
