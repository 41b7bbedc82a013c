package persistence

import (
	"context"

	appinv "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the goods-receipt TransactionScope
// using GORM transactions. Stock movements and the receipt status change
// commit or roll back as one unit.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormInventoryTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormInventoryTransactionalRepositories provides transaction-scoped repositories
type gormInventoryTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the stock level repository scoped to the current transaction
func (r *gormInventoryTransactionalRepositories) StockRepo() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// ReceiptRepo returns the goods receipt repository scoped to the current transaction
func (r *gormInventoryTransactionalRepositories) ReceiptRepo() inventory.GoodsReceiptRepository {
	return NewGormGoodsReceiptRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormInventoryTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Ensure GormInventoryTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)

// Ensure gormInventoryTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormInventoryTransactionalRepositories)(nil)
