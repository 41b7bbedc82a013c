package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// SaleRepository defines the persistence interface for sales
type SaleRepository interface {
	// FindByIDForTenant loads a sale with its lines, scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	// FindByNumber looks up a sale by its tenant-scoped document number
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Sale, error)
	// FindAllForTenant lists sales for a tenant, optionally narrowed to a branch
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*Sale, error)
	// FindByCustomer lists sales attached to a customer
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]*Sale, error)
	// FindLines reads back the persisted lines of a sale
	FindLines(ctx context.Context, saleID uuid.UUID) ([]SaleLine, error)
	// Save persists the sale header (lines are managed via ReplaceLines)
	Save(ctx context.Context, sale *Sale) error
	// ReplaceLines swaps the full line set of a sale in one operation
	ReplaceLines(ctx context.Context, saleID uuid.UUID, lines []SaleLine) error
	// CountForTenant counts sales for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	// GenerateNumber issues the next tenant-scoped sale number for a date
	GenerateNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error)
	// Delete removes a sale and its lines
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
