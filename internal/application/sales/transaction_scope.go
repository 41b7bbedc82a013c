package sales

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to everything a sale flow
// touches: the sale itself, branch stock, the catalog and the customer
// ledger. A completed on-account sale moves stock, posts a ledger entry and
// saves the sale in one atomic unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the sale-flow repositories
// within a transaction
type TransactionalRepositories interface {
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() sales.SaleRepository
	// StockRepo returns the stock level repository scoped to the current transaction
	StockRepo() inventory.StockLevelRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// PriceRepo returns the product price repository scoped to the current transaction
	PriceRepo() catalog.ProductPriceRepository
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() partner.CustomerRepository
	// LedgerRepo returns the ledger entry repository scoped to the current transaction
	LedgerRepo() partner.LedgerEntryRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for callers already inside a transaction.
type NoOpTransactionScope struct {
	saleRepo     sales.SaleRepository
	stockRepo    inventory.StockLevelRepository
	productRepo  catalog.ProductRepository
	priceRepo    catalog.ProductPriceRepository
	customerRepo partner.CustomerRepository
	ledgerRepo   partner.LedgerEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	saleRepo sales.SaleRepository,
	stockRepo inventory.StockLevelRepository,
	productRepo catalog.ProductRepository,
	priceRepo catalog.ProductPriceRepository,
	customerRepo partner.CustomerRepository,
	ledgerRepo partner.LedgerEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:     saleRepo,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		priceRepo:    priceRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Execute runs the function directly, without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

// StockRepo returns the stock level repository
func (s *NoOpTransactionScope) StockRepo() inventory.StockLevelRepository { return s.stockRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// PriceRepo returns the product price repository
func (s *NoOpTransactionScope) PriceRepo() catalog.ProductPriceRepository { return s.priceRepo }

// CustomerRepo returns the customer repository
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }

// LedgerRepo returns the ledger entry repository
func (s *NoOpTransactionScope) LedgerRepo() partner.LedgerEntryRepository { return s.ledgerRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
