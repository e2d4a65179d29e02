package cart

import (
	"context"

	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
	"github.com/olivercruz/dishpatch-backend/pkg/types"
)

// Option resolution is deliberately lenient. An add never fails because of
// its options: unknown groups and unknown choices are skipped with a log
// line, and an unexpected resolver failure degrades the whole add to zero
// options rather than rejecting it.

type skippedSelection struct {
	OptionID string
	ChoiceID string
	Reason   string
}

type snapshotResult struct {
	Snapshots types.OptionSnapshots
	Skipped   []skippedSelection
	Degraded  bool
}

// buildOptionSnapshots resolves the requested selections against the
// catalog and freezes names and prices into snapshots.
func (s *service) buildOptionSnapshots(ctx context.Context, selections []OptionSelection) snapshotResult {
	result := snapshotResult{Snapshots: types.OptionSnapshots{}}
	if len(selections) == 0 {
		return result
	}

	for _, selection := range selections {
		group, err := s.options.ResolveOptionGroup(ctx, selection.OptionID)
		if err != nil {
			if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
				result.Skipped = append(result.Skipped, skippedSelection{
					OptionID: selection.OptionID.String(),
					Reason:   "option group not found",
				})
				s.logg.Warn(
					s.logg.WithField(ctx, "option_id", selection.OptionID.String()),
					"skipping unresolved option group",
				)
				continue
			}
			// Unexpected failure: degrade the whole add to zero options.
			s.logg.Error(
				s.logg.WithField(ctx, "option_id", selection.OptionID.String()),
				"option resolution failed, adding line without options",
				err,
			)
			return snapshotResult{Snapshots: types.OptionSnapshots{}, Degraded: true}
		}

		snapshot := types.OptionSnapshot{
			OptionID: group.ID,
			Name:     group.Name,
			Type:     group.Type,
			Required: group.Required,
			Choices:  []types.ChoiceSnapshot{},
		}

		known := make(map[string]int, len(group.Choices))
		for i := range group.Choices {
			known[group.Choices[i].ID.String()] = i
		}

		for _, requested := range selection.Choices {
			idx, ok := known[requested.ChoiceID.String()]
			if !ok {
				result.Skipped = append(result.Skipped, skippedSelection{
					OptionID: selection.OptionID.String(),
					ChoiceID: requested.ChoiceID.String(),
					Reason:   "choice not in option group",
				})
				s.logg.Warn(
					s.logg.WithFields(ctx, map[string]any{
						"option_id": selection.OptionID.String(),
						"choice_id": requested.ChoiceID.String(),
					}),
					"skipping unresolved option choice",
				)
				continue
			}
			choice := group.Choices[idx]
			qty := requested.Quantity
			if qty < 1 {
				qty = 1
			}
			snapshot.Choices = append(snapshot.Choices, types.ChoiceSnapshot{
				ChoiceID:   choice.ID,
				Name:       choice.Name,
				PriceCents: choice.PriceCents,
				Quantity:   qty,
			})
		}

		snapshot.Recompute()
		result.Snapshots = append(result.Snapshots, snapshot)
	}

	return result
}
