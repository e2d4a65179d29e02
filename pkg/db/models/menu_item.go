package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a catalog entry the cart engine resolves at add time. Carts
// reference items by id only; name/price/image are copied into the line.
type MenuItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Description  *string   `gorm:"column:description"`
	PriceCents   int       `gorm:"column:price_cents;not null"`
	ImageURL     *string   `gorm:"column:image_url"`
	IsAvailable  bool      `gorm:"column:is_available;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
