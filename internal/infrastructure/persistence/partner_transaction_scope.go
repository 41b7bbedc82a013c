package persistence

import (
	"context"

	apppartner "github.com/retailpos/backend/internal/application/partner"
	"github.com/retailpos/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormPartnerTransactionScope implements the ledger TransactionScope using
// GORM transactions. An entry write and the customer balance move it causes
// commit or roll back as one unit.
type GormPartnerTransactionScope struct {
	db *gorm.DB
}

// NewGormPartnerTransactionScope creates a new GormPartnerTransactionScope
func NewGormPartnerTransactionScope(db *gorm.DB) *GormPartnerTransactionScope {
	return &GormPartnerTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormPartnerTransactionScope) Execute(ctx context.Context, fn func(repos apppartner.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormPartnerTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormPartnerTransactionalRepositories provides transaction-scoped repositories
type gormPartnerTransactionalRepositories struct {
	tx *gorm.DB
}

// CustomerRepo returns the customer repository scoped to the current transaction
func (r *gormPartnerTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// LedgerRepo returns the ledger entry repository scoped to the current transaction
func (r *gormPartnerTransactionalRepositories) LedgerRepo() partner.LedgerEntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

// Ensure GormPartnerTransactionScope implements TransactionScope
var _ apppartner.TransactionScope = (*GormPartnerTransactionScope)(nil)

// Ensure gormPartnerTransactionalRepositories implements TransactionalRepositories
var _ apppartner.TransactionalRepositories = (*gormPartnerTransactionalRepositories)(nil)
