package persistence

import (
	"context"

	appsales "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormSalesTransactionScope implements the sale-flow TransactionScope using
// GORM transactions. Stock deduction, ledger posting and the sale save of a
// status change commit or roll back as one unit.
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormSalesTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormSalesTransactionalRepositories provides transaction-scoped repositories
type gormSalesTransactionalRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction
func (r *gormSalesTransactionalRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// StockRepo returns the stock level repository scoped to the current transaction
func (r *gormSalesTransactionalRepositories) StockRepo() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormSalesTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// PriceRepo returns the product price repository scoped to the current transaction
func (r *gormSalesTransactionalRepositories) PriceRepo() catalog.ProductPriceRepository {
	return NewGormProductPriceRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction
func (r *gormSalesTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// LedgerRepo returns the ledger entry repository scoped to the current transaction
func (r *gormSalesTransactionalRepositories) LedgerRepo() partner.LedgerEntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

// Ensure GormSalesTransactionScope implements TransactionScope
var _ appsales.TransactionScope = (*GormSalesTransactionScope)(nil)

// Ensure gormSalesTransactionalRepositories implements TransactionalRepositories
var _ appsales.TransactionalRepositories = (*gormSalesTransactionalRepositories)(nil)
