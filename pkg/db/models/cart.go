package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the per-customer, per-restaurant aggregate. The composite unique
// index is the store-level backstop against duplicate aggregates under
// concurrent creation; Version guards against lost updates on save.
// TotalItems/TotalCents/LineCount are recomputed from Lines on every
// mutation, never adjusted incrementally.
type Cart struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID   uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_carts_customer_restaurant"`
	RestaurantID uuid.UUID  `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:idx_carts_customer_restaurant"`
	Version      int64      `gorm:"column:version;not null;default:0"`
	TotalItems   int        `gorm:"column:total_items;not null;default:0"`
	TotalCents   int        `gorm:"column:total_cents;not null;default:0"`
	LineCount    int        `gorm:"column:line_count;not null;default:0"`
	Lines        []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
