package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLevelRepository persists stock levels. Mutating callers must use the
// ForUpdate variants inside a transaction so that concurrent movements
// against the same branch-product pair serialize on the row lock.
type StockLevelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockLevel, error)
	// FindByBranchAndProduct reads without locking; shared.ErrNotFound means
	// no movement has ever touched the pair (quantity is effectively zero).
	FindByBranchAndProduct(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*StockLevel, error)
	// FindByBranchAndProductForUpdate reads with a row-level pessimistic lock.
	FindByBranchAndProductForUpdate(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*StockLevel, error)
	// GetOrCreateForUpdate returns the locked row, creating it with a zero
	// baseline when absent.
	GetOrCreateForUpdate(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*StockLevel, error)
	FindByBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) ([]StockLevel, error)
	Save(ctx context.Context, level *StockLevel) error
	// SumQuantityByProduct totals on-hand quantity for a product across branches.
	SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error)
}

// GoodsReceiptRepository persists goods receipts with their lines
type GoodsReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GoodsReceipt, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*GoodsReceipt, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*GoodsReceipt, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]GoodsReceipt, error)
	Save(ctx context.Context, receipt *GoodsReceipt) error
	ReplaceLines(ctx context.Context, receipt *GoodsReceipt) error
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
