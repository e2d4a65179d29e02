package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
	"github.com/olivercruz/dishpatch-backend/pkg/pagination"
)

// Service exposes catalog resolution for the cart engine and a public menu
// listing for the API.
type Service interface {
	ResolveItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error)
	ResolveOptionGroup(ctx context.Context, groupID uuid.UUID) (*OptionGroupDTO, error)
	ResolveChoice(ctx context.Context, choiceID uuid.UUID) (*ChoiceDTO, error)
	ListMenu(ctx context.Context, restaurantID uuid.UUID, params pagination.Params) (*MenuPage, error)
}

type service struct {
	repo *Repository
}

// NewService builds a menu service backed by the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu repo is required")
	}
	return &service{repo: repo}, nil
}

// ResolveItem returns the catalog item the cart engine will snapshot.
// Missing items map to not-found so callers can distinguish them from
// infrastructure failures.
func (s *service) ResolveItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	record, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	return itemToDTO(record), nil
}

// ResolveOptionGroup returns an option group with its choices.
func (s *service) ResolveOptionGroup(ctx context.Context, groupID uuid.UUID) (*OptionGroupDTO, error) {
	if groupID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option group id is required")
	}
	record, err := s.repo.FindOptionGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "option group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load option group")
	}
	return groupToDTO(record), nil
}

// ResolveChoice returns a single option choice.
func (s *service) ResolveChoice(ctx context.Context, choiceID uuid.UUID) (*ChoiceDTO, error) {
	if choiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "choice id is required")
	}
	record, err := s.repo.FindChoiceByID(ctx, choiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "option choice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load option choice")
	}
	return choiceToDTO(record), nil
}

// ListMenu returns one cursor-paginated page of the available items for a
// restaurant.
func (s *service) ListMenu(ctx context.Context, restaurantID uuid.UUID, params pagination.Params) (*MenuPage, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.ListItemsByRestaurant(ctx, restaurantID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}

	page := &MenuPage{Items: make([]ItemDTO, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		rows = rows[:limit]
	}
	for i := range rows {
		page.Items = append(page.Items, *itemToDTO(&rows[i]))
	}
	return page, nil
}
