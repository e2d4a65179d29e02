package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
)

// ErrVersionConflict is returned when a save raced another writer past the
// version check. The per-key lock makes this rare; the check is the last
// line of defense.
var ErrVersionConflict = errors.New("cart version conflict")

// Repository persists cart aggregates. Lines are always written as a full
// replacement of the aggregate's line set.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	return &Repository{db: tx}
}

// FindByKey loads the aggregate with its lines in insertion order. Returns
// gorm.ErrRecordNotFound when no aggregate exists.
func (r *Repository) FindByKey(ctx context.Context, key Key) (*models.Cart, error) {
	var record models.Cart
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("customer_id = ? AND restaurant_id = ?", key.CustomerID, key.RestaurantID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByCustomer returns every aggregate a customer has, oldest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Cart, error) {
	var rows []models.Cart
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new aggregate with its lines. IDs are assigned here so
// the write behaves the same on postgres and sqlite. Unique violations on
// the (customer, restaurant) index surface unchanged for the caller.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	for i := range cart.Lines {
		if cart.Lines[i].ID == uuid.Nil {
			cart.Lines[i].ID = uuid.New()
		}
		cart.Lines[i].CartID = cart.ID
	}
	return r.db.WithContext(ctx).Create(cart).Error
}

// SaveAggregate writes the recomputed totals and replaces the line set.
// The version predicate rejects writes that raced another mutation.
func (r *Repository) SaveAggregate(ctx context.Context, cart *models.Cart) error {
	res := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version).
		Updates(map[string]any{
			"version":     cart.Version + 1,
			"total_items": cart.TotalItems,
			"total_cents": cart.TotalCents,
			"line_count":  cart.LineCount,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	cart.Version++

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Delete(&models.CartLine{}).Error; err != nil {
		return err
	}
	if len(cart.Lines) == 0 {
		return nil
	}
	for i := range cart.Lines {
		if cart.Lines[i].ID == uuid.Nil {
			cart.Lines[i].ID = uuid.New()
		}
		cart.Lines[i].CartID = cart.ID
	}
	return r.db.WithContext(ctx).Create(&cart.Lines).Error
}

// DeleteByKey removes the aggregate and its lines. Returns the number of
// aggregates deleted.
func (r *Repository) DeleteByKey(ctx context.Context, key Key) (int64, error) {
	if err := r.db.WithContext(ctx).
		Where("cart_id IN (?)", r.db.
			Model(&models.Cart{}).
			Select("id").
			Where("customer_id = ? AND restaurant_id = ?", key.CustomerID, key.RestaurantID)).
		Delete(&models.CartLine{}).Error; err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).
		Where("customer_id = ? AND restaurant_id = ?", key.CustomerID, key.RestaurantID).
		Delete(&models.Cart{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
