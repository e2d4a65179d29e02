package menu

import (
	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
	"github.com/olivercruz/dishpatch-backend/pkg/enums"
)

// ItemDTO is the catalog read model the cart engine snapshots from.
type ItemDTO struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	PriceCents   int       `json:"price_cents"`
	ImageURL     *string   `json:"image_url,omitempty"`
	IsAvailable  bool      `json:"is_available"`
}

// OptionGroupDTO carries an option group and its choices for resolution.
type OptionGroupDTO struct {
	ID           uuid.UUID             `json:"id"`
	RestaurantID uuid.UUID             `json:"restaurant_id"`
	Name         string                `json:"name"`
	Type         enums.OptionGroupType `json:"type"`
	Required     bool                  `json:"required"`
	Choices      []ChoiceDTO           `json:"choices"`
}

// MenuPage is one cursor-paginated slice of a restaurant's menu.
type MenuPage struct {
	Items      []ItemDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ChoiceDTO is one selectable value inside an option group.
type ChoiceDTO struct {
	ID            uuid.UUID `json:"id"`
	OptionGroupID uuid.UUID `json:"option_group_id"`
	Name          string    `json:"name"`
	PriceCents    int       `json:"price_cents"`
}

func itemToDTO(record *models.MenuItem) *ItemDTO {
	return &ItemDTO{
		ID:           record.ID,
		RestaurantID: record.RestaurantID,
		Name:         record.Name,
		Description:  record.Description,
		PriceCents:   record.PriceCents,
		ImageURL:     record.ImageURL,
		IsAvailable:  record.IsAvailable,
	}
}

func groupToDTO(record *models.OptionGroup) *OptionGroupDTO {
	choices := make([]ChoiceDTO, 0, len(record.Choices))
	for i := range record.Choices {
		choices = append(choices, *choiceToDTO(&record.Choices[i]))
	}
	return &OptionGroupDTO{
		ID:           record.ID,
		RestaurantID: record.RestaurantID,
		Name:         record.Name,
		Type:         record.Type,
		Required:     record.Required,
		Choices:      choices,
	}
}

func choiceToDTO(record *models.OptionChoice) *ChoiceDTO {
	return &ChoiceDTO{
		ID:            record.ID,
		OptionGroupID: record.OptionGroupID,
		Name:          record.Name,
		PriceCents:    record.PriceCents,
	}
}
