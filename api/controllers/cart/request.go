package cart

import (
	"github.com/google/uuid"

	cartsvc "github.com/olivercruz/dishpatch-backend/internal/cart"
)

// AddLineRequest is the payload for adding one line to a cart. A missing
// quantity means one.
type AddLineRequest struct {
	ItemID   uuid.UUID             `json:"item_id" validate:"required"`
	Quantity int                   `json:"quantity" validate:"omitempty,gte=1"`
	Options  []OptionSelectionBody `json:"options" validate:"omitempty,dive"`
}

// OptionSelectionBody is one option group with its requested choices.
type OptionSelectionBody struct {
	OptionID uuid.UUID             `json:"option_id" validate:"required"`
	Choices  []ChoiceSelectionBody `json:"choices" validate:"omitempty,dive"`
}

// ChoiceSelectionBody is one requested choice.
type ChoiceSelectionBody struct {
	ChoiceID uuid.UUID `json:"choice_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateLineRequest sets a line's quantity.
type UpdateLineRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func toOptionSelections(body []OptionSelectionBody) []cartsvc.OptionSelection {
	if len(body) == 0 {
		return nil
	}
	selections := make([]cartsvc.OptionSelection, 0, len(body))
	for _, option := range body {
		selection := cartsvc.OptionSelection{OptionID: option.OptionID}
		for _, choice := range option.Choices {
			selection.Choices = append(selection.Choices, cartsvc.ChoiceSelection{
				ChoiceID: choice.ChoiceID,
				Quantity: choice.Quantity,
			})
		}
		selections = append(selections, selection)
	}
	return selections
}
