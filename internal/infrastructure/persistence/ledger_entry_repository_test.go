package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&partner.Customer{}, &partner.LedgerEntry{})
	require.NoError(t, err)

	return db
}

func mustEntry(t *testing.T, tenantID, customerID uuid.UUID, entryType partner.EntryType, debit, credit decimal.Decimal) *partner.LedgerEntry {
	t.Helper()

	entry, err := partner.NewLedgerEntry(tenantID, customerID, entryType, time.Now(), debit, credit)
	require.NoError(t, err)
	return entry
}

func TestGormLedgerEntryRepository_SumNetByCustomer(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customerID := uuid.New()

	require.NoError(t, repo.Save(ctx, mustEntry(t, tenantID, customerID, partner.EntryTypeInvoice, decimal.NewFromInt(100), decimal.Zero)))
	require.NoError(t, repo.Save(ctx, mustEntry(t, tenantID, customerID, partner.EntryTypePayment, decimal.Zero, decimal.NewFromInt(40))))

	// Another customer's entries must not leak into the sum
	require.NoError(t, repo.Save(ctx, mustEntry(t, tenantID, uuid.New(), partner.EntryTypeInvoice, decimal.NewFromInt(999), decimal.Zero)))

	net, err := repo.SumNetByCustomer(ctx, tenantID, customerID)
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.NewFromInt(60)), "expected 60, got %s", net)

	t.Run("customer without entries sums to zero", func(t *testing.T) {
		net, err := repo.SumNetByCustomer(ctx, tenantID, uuid.New())
		require.NoError(t, err)
		assert.True(t, net.IsZero())
	})
}

func TestGormLedgerEntryRepository_FindBySale(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customerID := uuid.New()
	saleID := uuid.New()

	saleEntry := mustEntry(t, tenantID, customerID, partner.EntryTypeInvoice, decimal.NewFromInt(75), decimal.Zero)
	saleEntry.AttachSale(saleID)
	saleEntry.Reference = "SAL-20260901-0001"
	require.NoError(t, repo.Save(ctx, saleEntry))

	require.NoError(t, repo.Save(ctx, mustEntry(t, tenantID, customerID, partner.EntryTypePayment, decimal.Zero, decimal.NewFromInt(20))))

	entries, err := repo.FindBySale(ctx, tenantID, saleID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, saleEntry.ID, entries[0].ID)
	assert.True(t, entries[0].DebitAmount.Equal(decimal.NewFromInt(75)))
}

func TestGormLedgerEntryRepository_FindByCustomer(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customerID := uuid.New()

	require.NoError(t, repo.Save(ctx, mustEntry(t, tenantID, customerID, partner.EntryTypeInvoice, decimal.NewFromInt(10), decimal.Zero)))
	require.NoError(t, repo.Save(ctx, mustEntry(t, tenantID, customerID, partner.EntryTypePayment, decimal.Zero, decimal.NewFromInt(10))))

	entries, err := repo.FindByCustomer(ctx, tenantID, customerID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	t.Run("entry_type filter narrows the list", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["entry_type"] = string(partner.EntryTypePayment)

		entries, err := repo.FindByCustomer(ctx, tenantID, customerID, filter)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, partner.EntryTypePayment, entries[0].EntryType)
	})
}

func TestGormLedgerEntryRepository_Delete(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	entry := mustEntry(t, tenantID, uuid.New(), partner.EntryTypeInvoice, decimal.NewFromInt(30), decimal.Zero)
	require.NoError(t, repo.Save(ctx, entry))

	require.NoError(t, repo.Delete(ctx, tenantID, entry.ID))

	_, err := repo.FindByIDForTenant(ctx, tenantID, entry.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("deleting a missing entry returns not found", func(t *testing.T) {
		err := repo.Delete(ctx, tenantID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_SaveAndFind(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	ownerID := uuid.New()

	customer, err := partner.NewCustomer(tenantID, ownerID, "Acme Retail")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, customer))

	t.Run("loads by id within tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Retail", found.Name)
	})

	t.Run("lists by owner", func(t *testing.T) {
		customers, err := repo.FindByOwner(ctx, tenantID, ownerID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, customers, 1)
	})

	t.Run("balance change persists", func(t *testing.T) {
		customer.ApplyBalanceDelta(decimal.NewFromInt(150))
		require.NoError(t, repo.Save(ctx, customer))

		found, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
		require.NoError(t, err)
		assert.True(t, found.CurrentBalance.Equal(decimal.NewFromInt(150)))
	})
}
