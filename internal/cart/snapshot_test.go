package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/internal/menu"
	"github.com/olivercruz/dishpatch-backend/pkg/enums"
	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
	"github.com/olivercruz/dishpatch-backend/pkg/logger"
)

type stubOptionResolver struct {
	groups map[uuid.UUID]*menu.OptionGroupDTO
	err    error
}

func (s *stubOptionResolver) ResolveOptionGroup(_ context.Context, groupID uuid.UUID) (*menu.OptionGroupDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	group, ok := s.groups[groupID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option group not found")
	}
	return group, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func snapshotService(options *stubOptionResolver) *service {
	return &service{options: options, logg: testLogger()}
}

func sizeGroup() (*menu.OptionGroupDTO, uuid.UUID, uuid.UUID) {
	groupID := uuid.New()
	smallID := uuid.New()
	largeID := uuid.New()
	return &menu.OptionGroupDTO{
		ID:       groupID,
		Name:     "Size",
		Type:     enums.OptionGroupTypeSingle,
		Required: true,
		Choices: []menu.ChoiceDTO{
			{ID: smallID, OptionGroupID: groupID, Name: "Small", PriceCents: 0},
			{ID: largeID, OptionGroupID: groupID, Name: "Large", PriceCents: 300},
		},
	}, smallID, largeID
}

func TestBuildOptionSnapshotsResolvesChoices(t *testing.T) {
	group, _, largeID := sizeGroup()
	svc := snapshotService(&stubOptionResolver{groups: map[uuid.UUID]*menu.OptionGroupDTO{group.ID: group}})

	result := svc.buildOptionSnapshots(context.Background(), []OptionSelection{
		{OptionID: group.ID, Choices: []ChoiceSelection{{ChoiceID: largeID, Quantity: 1}}},
	})

	if result.Degraded {
		t.Fatal("expected resolution to succeed")
	}
	if len(result.Snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(result.Snapshots))
	}
	snap := result.Snapshots[0]
	if snap.Name != "Size" || !snap.Required {
		t.Fatalf("snapshot did not freeze group metadata: %+v", snap)
	}
	if len(snap.Choices) != 1 || snap.Choices[0].Name != "Large" || snap.Choices[0].PriceCents != 300 {
		t.Fatalf("snapshot did not freeze choice: %+v", snap.Choices)
	}
	if snap.TotalCents != 300 {
		t.Fatalf("expected derived total 300, got %d", snap.TotalCents)
	}
}

func TestBuildOptionSnapshotsSkipsUnknownGroup(t *testing.T) {
	group, smallID, _ := sizeGroup()
	svc := snapshotService(&stubOptionResolver{groups: map[uuid.UUID]*menu.OptionGroupDTO{group.ID: group}})

	result := svc.buildOptionSnapshots(context.Background(), []OptionSelection{
		{OptionID: uuid.New(), Choices: []ChoiceSelection{{ChoiceID: uuid.New()}}},
		{OptionID: group.ID, Choices: []ChoiceSelection{{ChoiceID: smallID}}},
	})

	if result.Degraded {
		t.Fatal("a missing group must not degrade the whole add")
	}
	if len(result.Snapshots) != 1 {
		t.Fatalf("expected only the resolvable group, got %d snapshots", len(result.Snapshots))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "option group not found" {
		t.Fatalf("expected one skipped group, got %+v", result.Skipped)
	}
}

func TestBuildOptionSnapshotsSkipsUnknownChoice(t *testing.T) {
	group, smallID, _ := sizeGroup()
	svc := snapshotService(&stubOptionResolver{groups: map[uuid.UUID]*menu.OptionGroupDTO{group.ID: group}})

	result := svc.buildOptionSnapshots(context.Background(), []OptionSelection{
		{OptionID: group.ID, Choices: []ChoiceSelection{
			{ChoiceID: smallID},
			{ChoiceID: uuid.New()},
		}},
	})

	if len(result.Snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(result.Snapshots))
	}
	if len(result.Snapshots[0].Choices) != 1 {
		t.Fatalf("expected the unknown choice to be dropped, got %+v", result.Snapshots[0].Choices)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "choice not in option group" {
		t.Fatalf("expected one skipped choice, got %+v", result.Skipped)
	}
}

func TestBuildOptionSnapshotsGroupWithNoResolvedChoices(t *testing.T) {
	group, _, _ := sizeGroup()
	svc := snapshotService(&stubOptionResolver{groups: map[uuid.UUID]*menu.OptionGroupDTO{group.ID: group}})

	result := svc.buildOptionSnapshots(context.Background(), []OptionSelection{
		{OptionID: group.ID, Choices: []ChoiceSelection{{ChoiceID: uuid.New()}}},
	})

	// The group itself resolved, so the snapshot is kept with zero choices.
	if len(result.Snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(result.Snapshots))
	}
	if len(result.Snapshots[0].Choices) != 0 || result.Snapshots[0].TotalCents != 0 {
		t.Fatalf("expected empty snapshot, got %+v", result.Snapshots[0])
	}
}

func TestBuildOptionSnapshotsDegradesOnResolverFailure(t *testing.T) {
	svc := snapshotService(&stubOptionResolver{
		err: pkgerrors.New(pkgerrors.CodeDependency, "catalog unavailable"),
	})

	result := svc.buildOptionSnapshots(context.Background(), []OptionSelection{
		{OptionID: uuid.New(), Choices: []ChoiceSelection{{ChoiceID: uuid.New()}}},
	})

	if !result.Degraded {
		t.Fatal("expected degraded result")
	}
	if len(result.Snapshots) != 0 {
		t.Fatalf("degraded add must carry zero options, got %d", len(result.Snapshots))
	}
}

func TestBuildOptionSnapshotsDefaultChoiceQuantity(t *testing.T) {
	group, smallID, _ := sizeGroup()
	svc := snapshotService(&stubOptionResolver{groups: map[uuid.UUID]*menu.OptionGroupDTO{group.ID: group}})

	result := svc.buildOptionSnapshots(context.Background(), []OptionSelection{
		{OptionID: group.ID, Choices: []ChoiceSelection{{ChoiceID: smallID, Quantity: 0}}},
	})

	if result.Snapshots[0].Choices[0].Quantity != 1 {
		t.Fatalf("expected quantity to default to 1, got %d", result.Snapshots[0].Choices[0].Quantity)
	}
}
