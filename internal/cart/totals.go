package cart

import (
	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
)

// The helpers below are the only code that touches derived money fields.
// Every mutation runs a full recompute over the aggregate; nothing is
// adjusted incrementally.

// recomputeLine refreshes a line's derived totals. Option totals apply once
// per line, not per unit of line quantity; choice quantities are already
// baked into each snapshot's total.
func recomputeLine(line *models.CartLine) {
	for i := range line.Options {
		line.Options[i].Recompute()
	}
	line.SubtotalCents = line.UnitPriceCents * line.Quantity
	line.TotalCents = line.SubtotalCents + line.Options.TotalCents()
}

// recomputeTotals refreshes every line and the aggregate-level totals from
// scratch.
func recomputeTotals(cart *models.Cart) {
	totalItems := 0
	totalCents := 0
	for i := range cart.Lines {
		recomputeLine(&cart.Lines[i])
		totalItems += cart.Lines[i].Quantity
		totalCents += cart.Lines[i].TotalCents
	}
	cart.TotalItems = totalItems
	cart.TotalCents = totalCents
	cart.LineCount = len(cart.Lines)
}

// appendLine adds a new line at the end of the aggregate and recomputes.
func appendLine(cart *models.Cart, line models.CartLine) {
	line.Position = len(cart.Lines)
	cart.Lines = append(cart.Lines, line)
	recomputeTotals(cart)
}

// removeLineAt drops the line at idx, reindexes the surviving positions to
// stay dense, and recomputes.
func removeLineAt(cart *models.Cart, idx int) {
	cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	for i := range cart.Lines {
		cart.Lines[i].Position = i
	}
	recomputeTotals(cart)
}

// lineIndexByID returns the index of the line with the given id, or -1.
func lineIndexByID(cart *models.Cart, id uuid.UUID) int {
	for i := range cart.Lines {
		if cart.Lines[i].ID == id {
			return i
		}
	}
	return -1
}
