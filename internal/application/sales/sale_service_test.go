package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appinv "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
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

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*sales.Sale, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*sales.Sale, error) {
	args := m.Called(ctx, tenantID, branchID, filter)
	return args.Get(0).([]*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]*sales.Sale, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	return args.Get(0).([]*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindLines(ctx context.Context, saleID uuid.UUID) ([]sales.SaleLine, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).([]sales.SaleLine), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) ReplaceLines(ctx context.Context, saleID uuid.UUID, lines []sales.SaleLine) error {
	args := m.Called(ctx, saleID, lines)
	return args.Error(0)
}

func (m *MockSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	args := m.Called(ctx, tenantID, date)
	return args.String(0), args.Error(1)
}

func (m *MockSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockStockLevelRepository is a mock implementation of inventory.StockLevelRepository
type MockStockLevelRepository struct {
	mock.Mock
}

func (m *MockStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByBranchAndProduct(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, tenantID, branchID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByBranchAndProductForUpdate(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, tenantID, branchID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) GetOrCreateForUpdate(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, tenantID, branchID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, tenantID, branchID, filter)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockLevelRepository) SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCompany(ctx context.Context, tenantID, companyOwnerID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, companyOwnerID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockProductPriceRepository is a mock implementation of catalog.ProductPriceRepository
type MockProductPriceRepository struct {
	mock.Mock
}

func (m *MockProductPriceRepository) FindForBranch(ctx context.Context, tenantID, productID, priceListID, branchID uuid.UUID) (*catalog.ProductPrice, error) {
	args := m.Called(ctx, tenantID, productID, priceListID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductPrice), args.Error(1)
}

func (m *MockProductPriceRepository) Save(ctx context.Context, price *catalog.ProductPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

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

type saleServiceMocks struct {
	saleRepo     *MockSaleRepository
	stockRepo    *MockStockLevelRepository
	productRepo  *MockProductRepository
	priceRepo    *MockProductPriceRepository
	customerRepo *MockCustomerRepository
	ledgerRepo   *MockLedgerEntryRepository
}

func newSaleService(t *testing.T) (*SaleService, *saleServiceMocks) {
	t.Helper()
	m := &saleServiceMocks{
		saleRepo:     new(MockSaleRepository),
		stockRepo:    new(MockStockLevelRepository),
		productRepo:  new(MockProductRepository),
		priceRepo:    new(MockProductPriceRepository),
		customerRepo: new(MockCustomerRepository),
		ledgerRepo:   new(MockLedgerEntryRepository),
	}
	logger := zap.NewNop()
	stockService := appinv.NewStockService(m.stockRepo, m.productRepo, logger)
	scope := NewNoOpTransactionScope(m.saleRepo, m.stockRepo, m.productRepo, m.priceRepo, m.customerRepo, m.ledgerRepo)
	service := NewSaleService(m.saleRepo, stockService, NewPriceResolver(m.priceRepo), scope, logger)
	return service, m
}

func newTrackedProduct(t *testing.T, tenantID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, uuid.New(), "Widget", "SKU-1", catalog.ProductTypeFinishedGood)
	require.NoError(t, err)
	return product
}

func newPersistedSale(t *testing.T, tenantID, branchID uuid.UUID, product *catalog.Product, status sales.SaleStatus, deducted bool) *sales.Sale {
	t.Helper()
	sale, err := sales.NewSale(tenantID, "S-1", branchID, time.Now())
	require.NoError(t, err)
	_, err = sale.AddLine(product.ID, product.Name, decimal.NewFromInt(2), decimal.NewFromInt(50), decimal.Zero)
	require.NoError(t, err)
	sale.RecomputeTotals(sale.Lines)
	require.NoError(t, sale.SetPayment(sales.PaymentTypeCash, decimal.NewFromInt(100)))
	sale.Status = status
	sale.StockDeducted = deducted
	return sale
}

func stockLevel(t *testing.T, tenantID, branchID, productID uuid.UUID, qty int64) *inventory.StockLevel {
	t.Helper()
	level, err := inventory.NewStockLevel(tenantID, branchID, productID)
	require.NoError(t, err)
	level.Add(decimal.NewFromInt(qty))
	return level
}

// =============================================================================
// Tests
// =============================================================================

func TestSaleServiceSetStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	branchID := uuid.New()

	t.Run("completing a sale deducts stock and sets the flag", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusPending, false)
		level := stockLevel(t, tenantID, branchID, product.ID, 10)

		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.stockRepo.On("FindByBranchAndProductForUpdate", ctx, tenantID, branchID, product.ID).Return(level, nil)
		m.stockRepo.On("Save", ctx, level).Return(nil)
		m.saleRepo.On("Save", ctx, sale).Return(nil)

		response, err := service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", response.Status)
		assert.True(t, response.StockDeducted)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(8)))
	})

	t.Run("insufficient stock aborts the completion", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusPending, false)
		level := stockLevel(t, tenantID, branchID, product.ID, 1)

		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.stockRepo.On("FindByBranchAndProductForUpdate", ctx, tenantID, branchID, product.ID).Return(level, nil)

		_, err := service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusCompleted)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		m.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("refunding a completed sale restocks and clears the flag", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusCompleted, true)
		level := stockLevel(t, tenantID, branchID, product.ID, 8)

		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.stockRepo.On("FindByBranchAndProductForUpdate", ctx, tenantID, branchID, product.ID).Return(level, nil)
		m.stockRepo.On("Save", ctx, level).Return(nil)
		m.saleRepo.On("Save", ctx, sale).Return(nil)

		response, err := service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusRefunded)
		require.NoError(t, err)
		assert.Equal(t, "REFUNDED", response.Status)
		assert.False(t, response.StockDeducted)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("leaving completed without the flag fails loudly", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusCompleted, false)

		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)

		_, err := service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusCancelled)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrConsistencyFault))
		m.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		m.stockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("completing an on-account sale posts an invoice entry", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusPending, false)

		customer, err := partner.NewCustomer(tenantID, uuid.New(), "Acme")
		require.NoError(t, err)
		require.NoError(t, customer.EnableCredit(decimal.Zero))
		require.NoError(t, sale.SetCustomer(customer.ID))
		require.NoError(t, sale.SetPayment(sales.PaymentTypeOnAccount, decimal.Zero))

		level := stockLevel(t, tenantID, branchID, product.ID, 10)

		var posted *partner.LedgerEntry
		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.stockRepo.On("FindByBranchAndProductForUpdate", ctx, tenantID, branchID, product.ID).Return(level, nil)
		m.stockRepo.On("Save", ctx, level).Return(nil)
		m.ledgerRepo.On("FindBySale", ctx, tenantID, sale.ID).Return([]*partner.LedgerEntry{}, nil)
		m.customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)
		m.ledgerRepo.On("Save", ctx, mock.AnythingOfType("*partner.LedgerEntry")).Run(func(args mock.Arguments) {
			posted = args.Get(1).(*partner.LedgerEntry)
		}).Return(nil)
		m.customerRepo.On("Save", ctx, customer).Return(nil)
		m.saleRepo.On("Save", ctx, sale).Return(nil)

		_, err = service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusCompleted)
		require.NoError(t, err)

		require.NotNil(t, posted)
		assert.Equal(t, partner.EntryTypeInvoice, posted.EntryType)
		assert.True(t, posted.DebitAmount.Equal(sale.GrandTotal))
		require.NotNil(t, posted.SaleID)
		assert.Equal(t, sale.ID, *posted.SaleID)
		assert.True(t, customer.CurrentBalance.Equal(sale.GrandTotal))
	})

	t.Run("credit limit blocks the on-account completion", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusPending, false)

		customer, err := partner.NewCustomer(tenantID, uuid.New(), "Acme")
		require.NoError(t, err)
		require.NoError(t, customer.EnableCredit(decimal.NewFromInt(50))) // grand total is 100
		require.NoError(t, sale.SetCustomer(customer.ID))
		require.NoError(t, sale.SetPayment(sales.PaymentTypeOnAccount, decimal.Zero))

		level := stockLevel(t, tenantID, branchID, product.ID, 10)

		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.stockRepo.On("FindByBranchAndProductForUpdate", ctx, tenantID, branchID, product.ID).Return(level, nil)
		m.stockRepo.On("Save", ctx, level).Return(nil)
		m.ledgerRepo.On("FindBySale", ctx, tenantID, sale.ID).Return([]*partner.LedgerEntry{}, nil)
		m.customerRepo.On("FindByIDForUpdate", ctx, tenantID, customer.ID).Return(customer, nil)

		_, err = service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusCompleted)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CREDIT_LIMIT_EXCEEDED", domainErr.Code)
		m.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		m.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("reversing an on-account sale leaves the ledger untouched", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusCompleted, true)

		customer, err := partner.NewCustomer(tenantID, uuid.New(), "Acme")
		require.NoError(t, err)
		require.NoError(t, customer.EnableCredit(decimal.Zero))
		require.NoError(t, sale.SetCustomer(customer.ID))
		require.NoError(t, sale.SetPayment(sales.PaymentTypeOnAccount, decimal.Zero))

		entry, err := partner.NewLedgerEntry(tenantID, customer.ID, partner.EntryTypeInvoice, time.Now(), sale.GrandTotal, decimal.Zero)
		require.NoError(t, err)
		entry.AttachSale(sale.ID)
		customer.ApplyBalanceDelta(entry.NetAmount())
		balanceBefore := customer.CurrentBalance

		level := stockLevel(t, tenantID, branchID, product.ID, 8)

		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.stockRepo.On("FindByBranchAndProductForUpdate", ctx, tenantID, branchID, product.ID).Return(level, nil)
		m.stockRepo.On("Save", ctx, level).Return(nil)
		m.saleRepo.On("Save", ctx, sale).Return(nil)

		response, err := service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusRefunded)
		require.NoError(t, err)
		assert.Equal(t, "REFUNDED", response.Status)
		assert.False(t, sale.StockDeducted)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(10)))
		// the invoice survives the refund; settling it takes an explicit credit note
		assert.True(t, customer.CurrentBalance.Equal(balanceBefore))
		m.ledgerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		m.customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("re-completing a reverted on-account sale does not invoice twice", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		sale := newPersistedSale(t, tenantID, branchID, product, sales.SaleStatusRefunded, false)

		customer, err := partner.NewCustomer(tenantID, uuid.New(), "Acme")
		require.NoError(t, err)
		require.NoError(t, customer.EnableCredit(decimal.Zero))
		require.NoError(t, sale.SetCustomer(customer.ID))
		require.NoError(t, sale.SetPayment(sales.PaymentTypeOnAccount, decimal.Zero))

		entry, err := partner.NewLedgerEntry(tenantID, customer.ID, partner.EntryTypeInvoice, time.Now(), sale.GrandTotal, decimal.Zero)
		require.NoError(t, err)
		entry.AttachSale(sale.ID)

		level := stockLevel(t, tenantID, branchID, product.ID, 10)

		m.saleRepo.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.stockRepo.On("FindByBranchAndProductForUpdate", ctx, tenantID, branchID, product.ID).Return(level, nil)
		m.stockRepo.On("Save", ctx, level).Return(nil)
		m.ledgerRepo.On("FindBySale", ctx, tenantID, sale.ID).Return([]*partner.LedgerEntry{entry}, nil)
		m.saleRepo.On("Save", ctx, sale).Return(nil)

		response, err := service.SetStatus(ctx, tenantID, sale.ID, sales.SaleStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", response.Status)
		m.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSaleServiceCreateSale(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	branchID := uuid.New()

	t.Run("on-account without a customer is rejected up front", func(t *testing.T) {
		service, m := newSaleService(t)
		price := decimal.NewFromInt(10)

		_, err := service.CreateSale(ctx, tenantID, SaveSaleRequest{
			BranchID:    branchID,
			PaymentType: "ACCOUNT",
			Lines:       []SaleLineRequest{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: &price}},
		})
		require.Error(t, err)
		m.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("totals are recomputed from stored lines", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		price := decimal.NewFromInt(40)

		m.saleRepo.On("GenerateNumber", ctx, tenantID, mock.AnythingOfType("time.Time")).Return("S-20260901-0001", nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)

		// The header totals must come from the lines as read back from
		// storage, not from the in-memory request lines.
		stored := []sales.SaleLine{{LineTotal: decimal.NewFromInt(80)}}
		m.saleRepo.On("ReplaceLines", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("[]sales.SaleLine")).Return(nil)
		m.saleRepo.On("FindLines", ctx, mock.AnythingOfType("uuid.UUID")).Return(stored, nil)

		response, err := service.CreateSale(ctx, tenantID, SaveSaleRequest{
			BranchID:    branchID,
			PaymentType: "CASH",
			AmountPaid:  decimal.NewFromInt(100),
			Lines:       []SaleLineRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(2), UnitPrice: &price}},
		})
		require.NoError(t, err)
		assert.Equal(t, "S-20260901-0001", response.Number)
		assert.Equal(t, "PENDING", response.Status)
		assert.True(t, response.GrandTotal.Equal(decimal.NewFromInt(80)))
		assert.True(t, response.ChangeDue.Equal(decimal.NewFromInt(20)))
	})

	t.Run("price resolves from the price list when no override is given", func(t *testing.T) {
		service, m := newSaleService(t)
		product := newTrackedProduct(t, tenantID)
		priceListID := uuid.New()

		row, err := catalog.NewProductPrice(tenantID, product.ID, priceListID, nil, decimal.NewFromInt(25))
		require.NoError(t, err)

		m.saleRepo.On("GenerateNumber", ctx, tenantID, mock.AnythingOfType("time.Time")).Return("S-1", nil)
		m.productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		m.priceRepo.On("FindForBranch", ctx, tenantID, product.ID, priceListID, branchID).Return(row, nil)
		m.saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)
		m.saleRepo.On("ReplaceLines", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("[]sales.SaleLine")).Return(nil)
		m.saleRepo.On("FindLines", ctx, mock.AnythingOfType("uuid.UUID")).Return([]sales.SaleLine{}, nil)

		response, err := service.CreateSale(ctx, tenantID, SaveSaleRequest{
			BranchID:    branchID,
			PriceListID: &priceListID,
			PaymentType: "CARD",
			AmountPaid:  decimal.NewFromInt(25),
			Lines:       []SaleLineRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
		require.Len(t, response.Lines, 1)
		assert.True(t, response.Lines[0].UnitPrice.Equal(decimal.NewFromInt(25)))
	})
}
