// Package services contains stateless domain services for the wardrobe
// bounded context. Domain services enforce business rules that operate purely
// on domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"fmt"
	"net/url"
	"unicode"

	"github.com/google/uuid"

	wardrobedomain "github.com/ghuser/capsule/services/wardrobe/domain"
	"github.com/ghuser/capsule/services/wardrobe/domain/models"
)

// ValidateName enforces business rules for ItemName beyond the structural
// constraints enforced by the ItemName constructor (trimming, length 1–255).
func ValidateName(name models.ItemName) error {
	for _, r := range name.String() {
		if unicode.IsControl(r) {
			return fmt.Errorf("name must not contain control characters")
		}
	}
	return nil
}

// ValidateImageURL checks that an image URL is well-formed and absolute.
// Store membership is the object storage gateway's concern, not the domain's.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("image URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("image URL must be a valid absolute URL")
	}
	return nil
}

// ValidateItemForCreation performs cross-field validation on a fully-constructed
// ClothingItem aggregate before it is persisted. It assumes the item was built
// via models.NewClothingItem (so structural constraints are already satisfied)
// and adds business-level checks that span multiple fields.
func ValidateItemForCreation(item *models.ClothingItem) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.UserID == uuid.Nil {
		return fmt.Errorf("user_id must be set")
	}
	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	verr := &wardrobedomain.ValidationError{}
	if err := ValidateName(item.Name); err != nil {
		verr.Add("name", err.Error())
	}
	if err := ValidateImageURL(item.ImageURLFront); err != nil {
		verr.Add("image_url_front", err.Error())
	}
	if err := ValidateImageURL(item.ImageURLBack); err != nil {
		verr.Add("image_url_back", err.Error())
	}
	if item.Price != nil && *item.Price <= 0 {
		verr.Add("price", "price must be a positive number")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
