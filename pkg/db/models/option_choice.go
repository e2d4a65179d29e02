package models

import (
	"time"

	"github.com/google/uuid"
)

// OptionChoice is one selectable value inside an OptionGroup.
type OptionChoice struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OptionGroupID uuid.UUID `gorm:"column:option_group_id;type:uuid;not null;index"`
	Name          string    `gorm:"column:name;not null"`
	PriceCents    int       `gorm:"column:price_cents;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
