package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/capsule/services/wardrobe/domain/models"
)

const dateLayout = "2006-01-02"

// ItemResponse is the wire shape of a clothing item. Optional fields are
// nullable pointers; dates render as "YYYY-MM-DD".
type ItemResponse struct {
	ID            uuid.UUID `json:"id"              example:"123e4567-e89b-12d3-a456-426614174000"`
	Name          string    `json:"name"            example:"Linen Shirt"`
	Brand         *string   `json:"brand"           example:"Acme"`
	Type          *string   `json:"type"            example:"shirt"`
	Color         *string   `json:"color"           example:"white"`
	Description   *string   `json:"description"     example:"Lightweight summer shirt"`
	Size          *string   `json:"size"            example:"M"`
	ImageURLFront string    `json:"image_url_front" example:"http://localhost:9000/capsule/abc.jpg"`
	ImageURLBack  string    `json:"image_url_back"  example:"http://localhost:9000/capsule/def.jpg"`
	Price         *float64  `json:"price"           example:"49.99"`
	DatePurchased *string   `json:"date_purchased"  example:"2024-03-15"`
	InCapsule     bool      `json:"in_capsule"      example:"false"`
	CreatedAt     time.Time `json:"created_at"      example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.ClothingItem) ItemResponse {
	var date *string
	if item.DatePurchased != nil {
		d := item.DatePurchased.Format(dateLayout)
		date = &d
	}
	return ItemResponse{
		ID:            item.ID,
		Name:          item.Name.String(),
		Brand:         item.Brand,
		Type:          item.Type,
		Color:         item.Color,
		Description:   item.Description,
		Size:          item.Size,
		ImageURLFront: item.ImageURLFront,
		ImageURLBack:  item.ImageURLBack,
		Price:         item.Price,
		DatePurchased: date,
		InCapsule:     item.InCapsule,
		CreatedAt:     item.CreatedAt,
	}
}

func toItemResponses(items []*models.ClothingItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}
