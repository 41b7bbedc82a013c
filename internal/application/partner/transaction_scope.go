package partner

import (
	"context"

	"github.com/retailpos/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the customer and ledger
// repositories. A ledger posting and the balance move it causes commit or
// roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the partner repositories
// within a transaction
type TransactionalRepositories interface {
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() partner.CustomerRepository
	// LedgerRepo returns the ledger entry repository scoped to the current transaction
	LedgerRepo() partner.LedgerEntryRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for callers already inside a transaction.
type NoOpTransactionScope struct {
	customerRepo partner.CustomerRepository
	ledgerRepo   partner.LedgerEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(customerRepo partner.CustomerRepository, ledgerRepo partner.LedgerEntryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{customerRepo: customerRepo, ledgerRepo: ledgerRepo}
}

// Execute runs the function directly, without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CustomerRepo returns the customer repository
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }

// LedgerRepo returns the ledger entry repository
func (s *NoOpTransactionScope) LedgerRepo() partner.LedgerEntryRepository { return s.ledgerRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
