package inventory

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// goods-receipt flow touches. All repository operations inside Execute are
// part of the same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. All repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// StockRepo returns the stock level repository scoped to the current transaction
	StockRepo() inventory.StockLevelRepository
	// ReceiptRepo returns the goods receipt repository scoped to the current transaction
	ReceiptRepo() inventory.GoodsReceiptRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for callers already inside a transaction.
type NoOpTransactionScope struct {
	stockRepo   inventory.StockLevelRepository
	receiptRepo inventory.GoodsReceiptRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	stockRepo inventory.StockLevelRepository,
	receiptRepo inventory.GoodsReceiptRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:   stockRepo,
		receiptRepo: receiptRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function directly, without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the stock level repository
func (s *NoOpTransactionScope) StockRepo() inventory.StockLevelRepository {
	return s.stockRepo
}

// ReceiptRepo returns the goods receipt repository
func (s *NoOpTransactionScope) ReceiptRepo() inventory.GoodsReceiptRepository {
	return s.receiptRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
