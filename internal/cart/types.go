package cart

import (
	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
)

// ChoiceSelection is one requested choice inside an option group. Quantity
// defaults to 1 when omitted.
type ChoiceSelection struct {
	ChoiceID uuid.UUID `json:"choice_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"omitempty,gte=1"`
}

// OptionSelection is one requested option group with its chosen values.
type OptionSelection struct {
	OptionID uuid.UUID         `json:"option_id" validate:"required"`
	Choices  []ChoiceSelection `json:"choices" validate:"omitempty,dive"`
}

// AddLineInput carries one add-to-cart action. Options are resolved
// leniently: unknown groups or choices are dropped, never rejected.
type AddLineInput struct {
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
	ItemID       uuid.UUID
	Quantity     int
	Options      []OptionSelection
}

// UpdateLineInput changes the quantity of one existing line.
type UpdateLineInput struct {
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
	LineID       uuid.UUID
	Quantity     int
}

// Key identifies one cart aggregate.
type Key struct {
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
}

// Summary is the lightweight projection used for cart badges.
type Summary struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	TotalItems   int       `json:"total_items"`
	LineCount    int       `json:"line_count"`
	TotalCents   int       `json:"total_cents"`
}

// emptyCart is the projection returned when no aggregate exists. Reads never
// materialize a row.
func emptyCart(key Key) *models.Cart {
	return &models.Cart{
		CustomerID:   key.CustomerID,
		RestaurantID: key.RestaurantID,
		Lines:        []models.CartLine{},
	}
}
