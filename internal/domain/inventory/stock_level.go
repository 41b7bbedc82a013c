package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLevel is the quantity on hand for one product at one branch.
// It is the aggregate root for stock movements; the composite identifier is
// BranchID + ProductID and rows are created lazily on first movement.
// Only the stock engine writes this aggregate.
type StockLevel struct {
	shared.TenantAggregateRoot
	BranchID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_branch_product,priority:2"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_branch_product,priority:3"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a zero-quantity stock level for a branch-product pair
func NewStockLevel(tenantID, branchID, productID uuid.UUID) (*StockLevel, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockLevel{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BranchID:            branchID,
		ProductID:           productID,
		Quantity:            decimal.Zero,
	}, nil
}

// Add applies a signed quantity delta. Negative deltas must have been
// availability-checked by the caller; Add itself never rejects them so that
// reversals remain unconditional.
func (s *StockLevel) Add(delta decimal.Decimal) {
	s.Quantity = s.Quantity.Add(delta)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// CanFulfill returns true if the on-hand quantity covers the requested amount
func (s *StockLevel) CanFulfill(quantity decimal.Decimal) bool {
	return s.Quantity.GreaterThanOrEqual(quantity)
}

// Deduct removes quantity from stock, failing when not enough is on hand
func (s *StockLevel) Deduct(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity cannot be negative")
	}
	if !s.CanFulfill(quantity) {
		return shared.ErrInsufficientStock
	}
	s.Add(quantity.Neg())
	return nil
}

// HasStock returns true if there is any quantity on hand
func (s *StockLevel) HasStock() bool {
	return s.Quantity.GreaterThan(decimal.Zero)
}
