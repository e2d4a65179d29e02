package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/olivercruz/dishpatch-backend/pkg/db"
	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
	"github.com/olivercruz/dishpatch-backend/pkg/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec(`
		CREATE TABLE carts (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 0,
			total_items INTEGER NOT NULL DEFAULT 0,
			total_cents INTEGER NOT NULL DEFAULT 0,
			line_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (customer_id, restaurant_id)
		)
	`).Error)
	require.NoError(t, gdb.Exec(`
		CREATE TABLE cart_lines (
			id TEXT PRIMARY KEY,
			cart_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			item_id TEXT NOT NULL,
			name TEXT NOT NULL,
			unit_price_cents INTEGER NOT NULL,
			image_url TEXT,
			quantity INTEGER NOT NULL,
			options TEXT,
			subtotal_cents INTEGER NOT NULL,
			total_cents INTEGER NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)
	`).Error)

	t.Cleanup(func() {
		gdb.Exec("DROP TABLE cart_lines")
		gdb.Exec("DROP TABLE carts")
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func buildAggregate(key Key) *models.Cart {
	record := emptyCart(key)
	appendLine(record, models.CartLine{
		ItemID:         uuid.New(),
		Name:           "Margherita",
		UnitPriceCents: 1250,
		Quantity:       2,
		Options: types.OptionSnapshots{
			{
				OptionID: uuid.New(),
				Name:     "Size",
				Choices: []types.ChoiceSnapshot{
					{ChoiceID: uuid.New(), Name: "Large", PriceCents: 300, Quantity: 1},
				},
				TotalCents: 300,
			},
		},
	})
	appendLine(record, models.CartLine{
		ItemID:         uuid.New(),
		Name:           "Tiramisu",
		UnitPriceCents: 650,
		Quantity:       1,
	})
	return record
}

func TestRepoCreateAndFindByKey(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}

	require.NoError(t, repo.Create(context.Background(), buildAggregate(key)))

	found, err := repo.FindByKey(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, found.Lines, 2)
	require.Equal(t, 0, found.Lines[0].Position)
	require.Equal(t, 1, found.Lines[1].Position)
	require.Equal(t, "Margherita", found.Lines[0].Name)
	require.Len(t, found.Lines[0].Options, 1)
	require.Equal(t, "Size", found.Lines[0].Options[0].Name)
	require.Equal(t, 300, found.Lines[0].Options[0].TotalCents)
	require.Equal(t, 2800+650, found.TotalCents)
}

func TestRepoFindByKeyMissing(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)

	_, err := repo.FindByKey(context.Background(), Key{CustomerID: uuid.New(), RestaurantID: uuid.New()})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoCreateDuplicateKey(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}

	require.NoError(t, repo.Create(context.Background(), buildAggregate(key)))

	err := repo.Create(context.Background(), buildAggregate(key))
	require.Error(t, err)
	require.True(t, db.IsUniqueViolation(err, ""))
}

func TestRepoSaveAggregateReplacesLines(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), buildAggregate(key)))

	record, err := repo.FindByKey(context.Background(), key)
	require.NoError(t, err)
	removeLineAt(record, 0)

	require.NoError(t, repo.SaveAggregate(context.Background(), record))
	require.Equal(t, int64(1), record.Version)

	reloaded, err := repo.FindByKey(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, reloaded.Lines, 1)
	require.Equal(t, "Tiramisu", reloaded.Lines[0].Name)
	require.Equal(t, 0, reloaded.Lines[0].Position)
	require.Equal(t, 650, reloaded.TotalCents)

	var lineRows int64
	require.NoError(t, gdb.Model(&models.CartLine{}).Where("cart_id = ?", record.ID).Count(&lineRows).Error)
	require.Equal(t, int64(1), lineRows)
}

func TestRepoSaveAggregateVersionConflict(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), buildAggregate(key)))

	record, err := repo.FindByKey(context.Background(), key)
	require.NoError(t, err)

	// A concurrent writer bumps the version underneath us.
	require.NoError(t, gdb.Model(&models.Cart{}).
		Where("id = ?", record.ID).
		Update("version", record.Version+1).Error)

	err = repo.SaveAggregate(context.Background(), record)
	require.ErrorIs(t, err, ErrVersionConflict)
}

func TestRepoDeleteByKey(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), buildAggregate(key)))

	deleted, err := repo.DeleteByKey(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	_, err = repo.FindByKey(context.Background(), key)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var lineRows int64
	require.NoError(t, gdb.Model(&models.CartLine{}).Count(&lineRows).Error)
	require.Equal(t, int64(0), lineRows)

	deleted, err = repo.DeleteByKey(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, int64(0), deleted)
}

func TestRepoListByCustomer(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	customerID := uuid.New()

	require.NoError(t, repo.Create(context.Background(), buildAggregate(Key{CustomerID: customerID, RestaurantID: uuid.New()})))
	require.NoError(t, repo.Create(context.Background(), buildAggregate(Key{CustomerID: customerID, RestaurantID: uuid.New()})))
	require.NoError(t, repo.Create(context.Background(), buildAggregate(Key{CustomerID: uuid.New(), RestaurantID: uuid.New()})))

	rows, err := repo.ListByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, customerID, row.CustomerID)
		require.Len(t, row.Lines, 2)
	}
}
