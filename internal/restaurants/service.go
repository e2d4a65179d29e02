package restaurants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
)

// Service exposes restaurant reads and the availability gate consumed by the
// cart engine.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RestaurantDTO, error)
	IsAcceptingOrders(ctx context.Context, id uuid.UUID) (bool, error)
	ListActive(ctx context.Context) ([]RestaurantDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a restaurant service backed by the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant repo is required")
	}
	return &service{repo: repo}, nil
}

// GetByID returns the restaurant read model.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*RestaurantDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return toDTO(record), nil
}

// IsAcceptingOrders reports whether the restaurant is currently open for
// new cart activity. Unknown restaurants are not accepting orders.
func (s *service) IsAcceptingOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return record.IsActive, nil
}

// ListActive returns all restaurants currently accepting orders.
func (s *service) ListActive(ctx context.Context) ([]RestaurantDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurants")
	}
	result := make([]RestaurantDTO, 0, len(rows))
	for i := range rows {
		result = append(result, *toDTO(&rows[i]))
	}
	return result, nil
}
