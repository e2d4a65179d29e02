package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olivercruz/dishpatch-backend/internal/menu"
	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
)

// CartRepository is the persistence surface for cart aggregates. WithTx
// returns a repository bound to the given transaction.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindByKey(ctx context.Context, key Key) (*models.Cart, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	SaveAggregate(ctx context.Context, cart *models.Cart) error
	DeleteByKey(ctx context.Context, key Key) (int64, error)
}

// Catalog resolution is consumed through narrow interfaces so the service
// can be tested without the menu package's repositories.
type itemResolver interface {
	ResolveItem(ctx context.Context, itemID uuid.UUID) (*menu.ItemDTO, error)
}

type optionResolver interface {
	ResolveOptionGroup(ctx context.Context, groupID uuid.UUID) (*menu.OptionGroupDTO, error)
}

type availabilityGate interface {
	IsAcceptingOrders(ctx context.Context, restaurantID uuid.UUID) (bool, error)
}

// keyLock serializes mutations of one aggregate. Acquire blocks until the
// lock is held or attempts run out; the returned func releases it.
type keyLock interface {
	Acquire(ctx context.Context, key Key) (func(), error)
}
