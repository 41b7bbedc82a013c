package partner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]*partner.Customer, error) {
	args := m.Called(ctx, tenantID, ownerID, filter)
	return args.Get(0).([]*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLedgerEntryRepository is a mock implementation of partner.LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]*partner.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	return args.Get(0).([]*partner.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*partner.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, saleID)
	return args.Get(0).([]*partner.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) SumNetByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerEntryRepository) Save(ctx context.Context, entry *partner.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// =============================================================================
// Helpers
// =============================================================================

func newLedgerService(t *testing.T) (*LedgerService, *MockCustomerRepository, *MockLedgerEntryRepository) {
	t.Helper()
	customerRepo := new(MockCustomerRepository)
	ledgerRepo := new(MockLedgerEntryRepository)
	scope := NewNoOpTransactionScope(customerRepo, ledgerRepo)
	service := NewLedgerService(customerRepo, ledgerRepo, scope, zap.NewNop())
	return service, customerRepo, ledgerRepo
}

func newCustomer(t *testing.T, tenantID uuid.UUID, balance int64) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, uuid.New(), "Acme")
	require.NoError(t, err)
	customer.ApplyBalanceDelta(decimal.NewFromInt(balance))
	return customer
}

// =============================================================================
// Tests
// =============================================================================

func TestLedgerServicePostEntry(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("debit entry raises the balance", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 0)

		customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*partner.LedgerEntry")).Return(nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		response, err := service.PostEntry(ctx, tenantID, customer.ID, PostEntryRequest{
			EntryType: "DEBIT_NOTE",
			EntryDate: time.Now(),
			Debit:     decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.Equal(t, "DEBIT_NOTE", response.EntryType)
		assert.True(t, customer.CurrentBalance.Equal(decimal.NewFromInt(120)))
	})

	t.Run("credit entry lowers the balance regardless of type", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 200)

		customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*partner.LedgerEntry")).Return(nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		// Type INVOICE with a credit amount still lowers the balance: the
		// columns drive the math, the type is a label.
		_, err := service.PostEntry(ctx, tenantID, customer.ID, PostEntryRequest{
			EntryType: "INVOICE",
			EntryDate: time.Now(),
			Credit:    decimal.NewFromInt(80),
		})
		require.NoError(t, err)
		assert.True(t, customer.CurrentBalance.Equal(decimal.NewFromInt(120)))
	})

	t.Run("invalid amounts reject without touching the balance", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 50)

		customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)

		_, err := service.PostEntry(ctx, tenantID, customer.ID, PostEntryRequest{
			EntryType: "PAYMENT",
			EntryDate: time.Now(),
			Debit:     decimal.NewFromInt(10),
			Credit:    decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.True(t, customer.CurrentBalance.Equal(decimal.NewFromInt(50)))
		ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLedgerServiceUpdateEntry(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("balance moves by the net difference", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 100)

		entry, err := partner.NewLedgerEntry(tenantID, customer.ID, partner.EntryTypeInvoice, time.Now(), decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)

		ledgerRepo.On("FindByIDForTenant", ctx, tenantID, entry.ID).Return(entry, nil)
		customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)
		ledgerRepo.On("Save", ctx, entry).Return(nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		response, err := service.UpdateEntry(ctx, tenantID, entry.ID, UpdateEntryRequest{
			EntryType: "INVOICE",
			EntryDate: time.Now(),
			Debit:     decimal.NewFromInt(130),
		})
		require.NoError(t, err)
		assert.True(t, response.Debit.Equal(decimal.NewFromInt(130)))
		assert.True(t, customer.CurrentBalance.Equal(decimal.NewFromInt(130)))
	})

	t.Run("an entry posted by a sale can be amended", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 100)
		saleID := uuid.New()

		entry, err := partner.NewLedgerEntry(tenantID, customer.ID, partner.EntryTypeInvoice, time.Now(), decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)
		entry.AttachSale(saleID)

		ledgerRepo.On("FindByIDForTenant", ctx, tenantID, entry.ID).Return(entry, nil)
		customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)
		ledgerRepo.On("Save", ctx, entry).Return(nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		_, err = service.UpdateEntry(ctx, tenantID, entry.ID, UpdateEntryRequest{
			EntryType: "INVOICE",
			EntryDate: time.Now(),
			Debit:     decimal.NewFromInt(80),
		})
		require.NoError(t, err)
		assert.True(t, customer.CurrentBalance.Equal(decimal.NewFromInt(80)))
		require.NotNil(t, entry.SaleID)
		assert.Equal(t, saleID, *entry.SaleID)
	})
}

func TestLedgerServiceDeleteEntry(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deleting rolls the net amount out of the balance", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 100)

		entry, err := partner.NewLedgerEntry(tenantID, customer.ID, partner.EntryTypePayment, time.Now(), decimal.Zero, decimal.NewFromInt(40))
		require.NoError(t, err)
		customer.ApplyBalanceDelta(entry.NetAmount()) // balance now 60

		ledgerRepo.On("FindByIDForTenant", ctx, tenantID, entry.ID).Return(entry, nil)
		customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)
		ledgerRepo.On("Delete", ctx, tenantID, entry.ID).Return(nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		err = service.DeleteEntry(ctx, tenantID, entry.ID)
		require.NoError(t, err)
		assert.True(t, customer.CurrentBalance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("deleting a sale's invoice entry settles the balance", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 0)

		entry, err := partner.NewLedgerEntry(tenantID, customer.ID, partner.EntryTypeInvoice, time.Now(), decimal.NewFromInt(50), decimal.Zero)
		require.NoError(t, err)
		entry.AttachSale(uuid.New())
		customer.ApplyBalanceDelta(entry.NetAmount()) // balance now 50

		ledgerRepo.On("FindByIDForTenant", ctx, tenantID, entry.ID).Return(entry, nil)
		customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)
		ledgerRepo.On("Delete", ctx, tenantID, entry.ID).Return(nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		err = service.DeleteEntry(ctx, tenantID, entry.ID)
		require.NoError(t, err)
		assert.True(t, customer.CurrentBalance.IsZero())
	})
}

func TestLedgerServiceReconcileBalance(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("reports stored and derived balances", func(t *testing.T) {
		service, customerRepo, ledgerRepo := newLedgerService(t)
		customer := newCustomer(t, tenantID, 75)

		customerRepo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		ledgerRepo.On("SumNetByCustomer", ctx, tenantID, customer.ID).Return(decimal.NewFromInt(75), nil)

		stored, derived, err := service.ReconcileBalance(ctx, tenantID, customer.ID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentBalance.Equal(derived.CurrentBalance))
	})
}
