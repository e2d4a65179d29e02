package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/enums"
)

// OptionGroup is a catalog entry describing a configurable aspect of a menu
// item ("Size", "Toppings"). Read-only from the cart engine's perspective.
type OptionGroup struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID             `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name         string                `gorm:"column:name;not null"`
	Type         enums.OptionGroupType `gorm:"column:type;type:option_group_type;not null;default:'single'"`
	Required     bool                  `gorm:"column:required;not null;default:false"`
	Choices      []OptionChoice        `gorm:"foreignKey:OptionGroupID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
