package types

import (
	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/enums"
)

// ChoiceSnapshot freezes a selected choice's name and price at add time so
// later catalog edits cannot alter an existing cart line.
type ChoiceSnapshot struct {
	ChoiceID   uuid.UUID `json:"choice_id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Quantity   int       `json:"quantity"`
}

// OptionSnapshot freezes a selected option group and its resolved choices.
// TotalCents is always derived from the choices, never set independently.
type OptionSnapshot struct {
	OptionID   uuid.UUID             `json:"option_id"`
	Name       string                `json:"name"`
	Type       enums.OptionGroupType `json:"type"`
	Required   bool                  `json:"required"`
	Choices    []ChoiceSnapshot      `json:"choices"`
	TotalCents int                   `json:"total_cents"`
}

// OptionSnapshots is stored on a cart line as a jsonb column.
type OptionSnapshots []OptionSnapshot

// Recompute refreshes TotalCents from the snapshot's own choices.
func (o *OptionSnapshot) Recompute() {
	total := 0
	for _, choice := range o.Choices {
		total += choice.PriceCents * choice.Quantity
	}
	o.TotalCents = total
}

// TotalCents sums the derived totals across all option snapshots.
func (o OptionSnapshots) TotalCents() int {
	total := 0
	for _, snapshot := range o {
		total += snapshot.TotalCents
	}
	return total
}
