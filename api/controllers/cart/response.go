package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
	"github.com/olivercruz/dishpatch-backend/pkg/types"
)

// CartResponse is the full aggregate representation. An aggregate that does
// not exist yet serializes with a nil id and zero totals.
type CartResponse struct {
	ID           *uuid.UUID     `json:"id,omitempty"`
	CustomerID   uuid.UUID      `json:"customer_id"`
	RestaurantID uuid.UUID      `json:"restaurant_id"`
	TotalItems   int            `json:"total_items"`
	TotalCents   int            `json:"total_cents"`
	LineCount    int            `json:"line_count"`
	Lines        []LineResponse `json:"lines"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

// LineResponse is one cart line with its frozen snapshot fields.
type LineResponse struct {
	ID             uuid.UUID             `json:"id"`
	Position       int                   `json:"position"`
	ItemID         uuid.UUID             `json:"item_id"`
	Name           string                `json:"name"`
	UnitPriceCents int                   `json:"unit_price_cents"`
	ImageURL       *string               `json:"image_url,omitempty"`
	Quantity       int                   `json:"quantity"`
	Options        types.OptionSnapshots `json:"options"`
	SubtotalCents  int                   `json:"subtotal_cents"`
	TotalCents     int                   `json:"total_cents"`
}

func newCartResponse(record *models.Cart) CartResponse {
	response := CartResponse{
		CustomerID:   record.CustomerID,
		RestaurantID: record.RestaurantID,
		TotalItems:   record.TotalItems,
		TotalCents:   record.TotalCents,
		LineCount:    record.LineCount,
		Lines:        make([]LineResponse, 0, len(record.Lines)),
	}
	if record.ID != uuid.Nil {
		id := record.ID
		response.ID = &id
		updatedAt := record.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	for i := range record.Lines {
		response.Lines = append(response.Lines, newLineResponse(&record.Lines[i]))
	}
	return response
}

func newLineResponse(line *models.CartLine) LineResponse {
	options := line.Options
	if options == nil {
		options = types.OptionSnapshots{}
	}
	return LineResponse{
		ID:             line.ID,
		Position:       line.Position,
		ItemID:         line.ItemID,
		Name:           line.Name,
		UnitPriceCents: line.UnitPriceCents,
		ImageURL:       line.ImageURL,
		Quantity:       line.Quantity,
		Options:        options,
		SubtotalCents:  line.SubtotalCents,
		TotalCents:     line.TotalCents,
	}
}
