package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olivercruz/dishpatch-backend/pkg/db"
	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
	"github.com/olivercruz/dishpatch-backend/pkg/logger"
	"github.com/olivercruz/dishpatch-backend/pkg/metrics"
)

// Service is the cart engine. Every mutation is serialized per aggregate
// key, recomputes totals from scratch, and persists the whole aggregate in
// one transaction.
type Service interface {
	AddLine(ctx context.Context, input AddLineInput) (*models.Cart, error)
	UpdateLineQuantity(ctx context.Context, input UpdateLineInput) (*models.Cart, error)
	RemoveLine(ctx context.Context, key Key, lineID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context, key Key) (*models.Cart, error)
	GetCart(ctx context.Context, key Key) (*models.Cart, error)
	GetSummary(ctx context.Context, key Key) (*Summary, error)
	Checkout(ctx context.Context, key Key) (*models.Cart, error)
	ListCarts(ctx context.Context, customerID uuid.UUID) ([]models.Cart, error)
}

// Params collects the engine's dependencies.
type Params struct {
	DB      *gorm.DB
	Repo    CartRepository
	Items   itemResolver
	Options optionResolver
	Gate    availabilityGate
	Lock    keyLock
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

type service struct {
	db      *gorm.DB
	repo    CartRepository
	items   itemResolver
	options optionResolver
	gate    availabilityGate
	lock    keyLock
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewService validates the dependency set and builds the engine. Metrics
// may be nil; everything else is required.
func NewService(params Params) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item resolver is required")
	}
	if params.Options == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option resolver is required")
	}
	if params.Gate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "availability gate is required")
	}
	if params.Lock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "key lock is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		db:      params.DB,
		repo:    params.Repo,
		items:   params.Items,
		options: params.Options,
		gate:    params.Gate,
		lock:    params.Lock,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

func (s *service) observe(operation string, start time.Time, err error) {
	s.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(operation)
		return
	}
	s.metrics.IncSuccess(operation)
}

func validateKey(key Key) error {
	if key.CustomerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if key.RestaurantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	return nil
}

// AddLine appends a new line to the aggregate, creating it on first use.
// Adding the same item twice yields two lines; lines are never merged.
func (s *service) AddLine(ctx context.Context, input AddLineInput) (result *models.Cart, err error) {
	start := time.Now()
	defer func() { s.observe("add_line", start, err) }()

	key := Key{CustomerID: input.CustomerID, RestaurantID: input.RestaurantID}
	if err = validateKey(key); err != nil {
		return nil, err
	}
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.items.ResolveItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != input.RestaurantID {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "menu item does not belong to this restaurant")
	}
	if !item.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "menu item is not available")
	}

	accepting, err := s.gate.IsAcceptingOrders(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !accepting {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "restaurant is not accepting orders")
	}

	release, err := s.lock.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	defer release()

	resolution := s.buildOptionSnapshots(ctx, input.Options)
	line := models.CartLine{
		ItemID:         item.ID,
		Name:           item.Name,
		UnitPriceCents: item.PriceCents,
		ImageURL:       item.ImageURL,
		Quantity:       input.Quantity,
		Options:        resolution.Snapshots,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, findErr := repo.FindByKey(ctx, key)
		if findErr != nil {
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load cart")
			}

			fresh := emptyCart(key)
			appendLine(fresh, line)
			// On postgres a failed insert aborts the whole transaction, so
			// the create attempt runs under a savepoint the conflict path
			// can roll back to before reloading.
			if spErr := tx.SavePoint("cart_create").Error; spErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, spErr, "create cart savepoint")
			}
			createErr := repo.Create(ctx, fresh)
			if createErr == nil {
				result = fresh
				return nil
			}
			if !db.IsUniqueViolation(createErr, "") {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create cart")
			}
			if rbErr := tx.RollbackTo("cart_create").Error; rbErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, rbErr, "recover from create conflict")
			}

			// Lost the creation race; reload the winner and append to it.
			record, findErr = repo.FindByKey(ctx, key)
			if findErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "reload cart after create conflict")
			}
		}

		appendLine(record, line)
		if saveErr := repo.SaveAggregate(ctx, record); saveErr != nil {
			if errors.Is(saveErr, ErrVersionConflict) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, saveErr, "cart was modified concurrently")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, saveErr, "save cart")
		}
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateLineQuantity sets the quantity of one line and recomputes. Zero is
// not a removal here; deleting a line is an explicit operation.
func (s *service) UpdateLineQuantity(ctx context.Context, input UpdateLineInput) (result *models.Cart, err error) {
	start := time.Now()
	defer func() { s.observe("update_line", start, err) }()

	key := Key{CustomerID: input.CustomerID, RestaurantID: input.RestaurantID}
	if err = validateKey(key); err != nil {
		return nil, err
	}
	if input.LineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line id is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	result, err = s.mutate(ctx, key, func(record *models.Cart) error {
		idx := lineIndexByID(record, input.LineID)
		if idx < 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		record.Lines[idx].Quantity = input.Quantity
		recomputeTotals(record)
		return nil
	})
	return result, err
}

// RemoveLine deletes one line and compacts positions.
func (s *service) RemoveLine(ctx context.Context, key Key, lineID uuid.UUID) (result *models.Cart, err error) {
	start := time.Now()
	defer func() { s.observe("remove_line", start, err) }()

	if err = validateKey(key); err != nil {
		return nil, err
	}
	if lineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line id is required")
	}

	result, err = s.mutate(ctx, key, func(record *models.Cart) error {
		idx := lineIndexByID(record, lineID)
		if idx < 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		removeLineAt(record, idx)
		return nil
	})
	return result, err
}

// ClearCart removes every line but keeps the aggregate row. The emptied
// cart still exists and reads back with zero totals.
func (s *service) ClearCart(ctx context.Context, key Key) (result *models.Cart, err error) {
	start := time.Now()
	defer func() { s.observe("clear_cart", start, err) }()

	if err = validateKey(key); err != nil {
		return nil, err
	}

	result, err = s.mutate(ctx, key, func(record *models.Cart) error {
		record.Lines = []models.CartLine{}
		recomputeTotals(record)
		return nil
	})
	return result, err
}

// mutate runs one locked, transactional read-modify-write over an existing
// aggregate.
func (s *service) mutate(ctx context.Context, key Key, apply func(record *models.Cart) error) (*models.Cart, error) {
	release, err := s.lock.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	defer release()

	var result *models.Cart
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, findErr := repo.FindByKey(ctx, key)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load cart")
		}

		if applyErr := apply(record); applyErr != nil {
			return applyErr
		}

		if saveErr := repo.SaveAggregate(ctx, record); saveErr != nil {
			if errors.Is(saveErr, ErrVersionConflict) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, saveErr, "cart was modified concurrently")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, saveErr, "save cart")
		}
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetCart returns the aggregate, or an empty projection when none exists.
// Reads never create rows and never take the lock.
func (s *service) GetCart(ctx context.Context, key Key) (result *models.Cart, err error) {
	start := time.Now()
	defer func() { s.observe("get_cart", start, err) }()

	if err = validateKey(key); err != nil {
		return nil, err
	}

	return s.loadProjection(ctx, key)
}

// loadProjection reads the aggregate, substituting the empty projection
// for a cart that was never materialized.
func (s *service) loadProjection(ctx context.Context, key Key) (*models.Cart, error) {
	record, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCart(key), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}

// GetSummary returns the badge projection from the stored totals.
func (s *service) GetSummary(ctx context.Context, key Key) (result *Summary, err error) {
	start := time.Now()
	defer func() { s.observe("get_summary", start, err) }()

	if err = validateKey(key); err != nil {
		return nil, err
	}

	record, err := s.loadProjection(ctx, key)
	if err != nil {
		return nil, err
	}
	return &Summary{
		RestaurantID: key.RestaurantID,
		TotalItems:   record.TotalItems,
		LineCount:    record.LineCount,
		TotalCents:   record.TotalCents,
	}, nil
}

// Checkout returns the final aggregate and deletes it. A missing cart is
// not-found; an empty one cannot be checked out.
func (s *service) Checkout(ctx context.Context, key Key) (result *models.Cart, err error) {
	start := time.Now()
	defer func() { s.observe("checkout", start, err) }()

	if err = validateKey(key); err != nil {
		return nil, err
	}

	release, err := s.lock.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, findErr := repo.FindByKey(ctx, key)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load cart")
		}
		if len(record.Lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot check out an empty cart")
		}

		deleted, delErr := repo.DeleteByKey(ctx, key)
		if delErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, delErr, "delete cart")
		}
		if deleted == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(
		s.logg.WithFields(ctx, map[string]any{
			"customer_id":   key.CustomerID.String(),
			"restaurant_id": key.RestaurantID.String(),
			"total_cents":   result.TotalCents,
			"line_count":    result.LineCount,
		}),
		"cart checked out",
	)
	return result, nil
}

// ListCarts returns every aggregate the customer currently has.
func (s *service) ListCarts(ctx context.Context, customerID uuid.UUID) (result []models.Cart, err error) {
	start := time.Now()
	defer func() { s.observe("list_carts", start, err) }()

	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carts")
	}
	return rows, nil
}
