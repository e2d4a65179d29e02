package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/types"
)

// CartLine is one discrete add-to-cart action. Two adds of the same item are
// two lines; the engine never merges them. Position preserves insertion
// order across reads. Name/price/image/options are snapshots frozen at add
// time, so catalog edits do not rewrite existing lines.
type CartLine struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID             `gorm:"column:cart_id;type:uuid;not null;index"`
	Position       int                   `gorm:"column:position;not null"`
	ItemID         uuid.UUID             `gorm:"column:item_id;type:uuid;not null"`
	Name           string                `gorm:"column:name;not null"`
	UnitPriceCents int                   `gorm:"column:unit_price_cents;not null"`
	ImageURL       *string               `gorm:"column:image_url"`
	Quantity       int                   `gorm:"column:quantity;not null"`
	Options        types.OptionSnapshots `gorm:"column:options;type:jsonb;serializer:json"`
	SubtotalCents  int                   `gorm:"column:subtotal_cents;not null"`
	TotalCents     int                   `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
