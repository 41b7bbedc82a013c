package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	// FindByIDForTenant loads a customer scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	// FindByIDForUpdate loads a customer under a row lock for balance changes
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	// FindByOwner lists customers belonging to a business unit
	FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]*Customer, error)
	// Save persists the customer
	Save(ctx context.Context, customer *Customer) error
	// Delete removes a customer
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// LedgerEntryRepository defines the persistence interface for ledger entries
type LedgerEntryRepository interface {
	// FindByIDForTenant loads an entry scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LedgerEntry, error)
	// FindByCustomer lists a customer's entries, newest first
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]*LedgerEntry, error)
	// FindBySale returns the entries posted by a sale
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*LedgerEntry, error)
	// SumNetByCustomer recomputes the balance from entries for reconciliation
	SumNetByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error)
	// Save persists the entry
	Save(ctx context.Context, entry *LedgerEntry) error
	// Delete removes an entry
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
