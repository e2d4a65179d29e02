package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
	"github.com/olivercruz/dishpatch-backend/pkg/pagination"
)

// Repository encapsulates catalog reads for menu items, option groups and
// choices. The cart engine is a pure consumer here.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a menu repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindItemByID loads a menu item by primary key.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var record models.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindOptionGroupByID loads an option group with its choices preloaded.
func (r *Repository) FindOptionGroupByID(ctx context.Context, id uuid.UUID) (*models.OptionGroup, error) {
	var record models.OptionGroup
	if err := r.db.WithContext(ctx).
		Preload("Choices").
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindChoiceByID loads a single option choice by primary key.
func (r *Repository) FindChoiceByID(ctx context.Context, id uuid.UUID) (*models.OptionChoice, error) {
	var record models.OptionChoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListItemsByRestaurant returns a page of available items for a restaurant
// menu, keyed by (created_at, id) so the cursor stays stable under inserts.
func (r *Repository) ListItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true)
	if cursor != nil {
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.MenuItem
	if err := query.
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
