package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceiptStatus represents the lifecycle state of a goods receipt
type ReceiptStatus string

const (
	ReceiptStatusPending   ReceiptStatus = "PENDING"
	ReceiptStatusCompleted ReceiptStatus = "COMPLETED"
	ReceiptStatusCancelled ReceiptStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ReceiptStatus
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptStatusPending, ReceiptStatusCompleted, ReceiptStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReceiptStatus
func (s ReceiptStatus) String() string {
	return string(s)
}

// StockEffect is the inventory side-effect a status transition demands
type StockEffect int

const (
	// StockEffectNone leaves stock untouched
	StockEffectNone StockEffect = iota
	// StockEffectIncrease adds each line's quantity to stock
	StockEffectIncrease
	// StockEffectDecrease removes each line's quantity from stock (reversal)
	StockEffectDecrease
)

// ReceiptTransitionEffect decides the stock side-effect of moving a receipt
// from one persisted status to another. The decision depends only on the two
// statuses, never on in-memory snapshots: entering COMPLETED books the goods
// in, leaving COMPLETED books them back out, everything else is neutral.
// Completing an already-completed receipt is neutral too - the effect fires
// per transition, not per state.
func ReceiptTransitionEffect(previous, next ReceiptStatus) StockEffect {
	if previous == next {
		return StockEffectNone
	}
	if next == ReceiptStatusCompleted {
		return StockEffectIncrease
	}
	if previous == ReceiptStatusCompleted {
		return StockEffectDecrease
	}
	return StockEffectNone
}

// ReceiptLine is one received product on a goods receipt
type ReceiptLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReceiptID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(255);not null"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (ReceiptLine) TableName() string {
	return "receipt_lines"
}

// NewReceiptLine creates a receipt line after validating the amounts
func NewReceiptLine(receiptID, productID uuid.UUID, productName string, quantity, unitCost decimal.Decimal) (*ReceiptLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity received must be greater than zero")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	now := time.Now()
	return &ReceiptLine{
		ID:               uuid.New(),
		ReceiptID:        receiptID,
		ProductID:        productID,
		ProductName:      productName,
		QuantityReceived: quantity,
		UnitCost:         unitCost,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// LineValue returns quantity * unit cost for the line
func (l *ReceiptLine) LineValue() decimal.Decimal {
	return l.QuantityReceived.Mul(l.UnitCost)
}

// GoodsReceipt records stock received from a supplier (GRN).
// It is the aggregate root for its lines; status transitions drive the
// stock engine through ReceiptTransitionEffect.
type GoodsReceipt struct {
	shared.TenantAggregateRoot
	Number                string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_receipt_tenant_number,priority:2"`
	BranchID              uuid.UUID     `gorm:"type:uuid;not null;index"`
	SupplierID            uuid.UUID     `gorm:"type:uuid;not null;index"`
	SupplierInvoiceNumber string        `gorm:"type:varchar(50)"`
	ReceivedDate          time.Time     `gorm:"not null"`
	Status                ReceiptStatus `gorm:"type:varchar(10);not null;default:'PENDING'"`
	Notes                 string        `gorm:"type:text"`
	ReceivedBy            *uuid.UUID    `gorm:"type:uuid"`
	Lines                 []ReceiptLine `gorm:"foreignKey:ReceiptID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// NewGoodsReceipt creates a pending goods receipt
func NewGoodsReceipt(tenantID uuid.UUID, number string, branchID, supplierID uuid.UUID, receivedDate time.Time) (*GoodsReceipt, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Receipt number cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	return &GoodsReceipt{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		BranchID:            branchID,
		SupplierID:          supplierID,
		ReceivedDate:        receivedDate,
		Status:              ReceiptStatusPending,
		Lines:               make([]ReceiptLine, 0),
	}, nil
}

// AddLine appends a validated line to the receipt
func (g *GoodsReceipt) AddLine(productID uuid.UUID, productName string, quantity, unitCost decimal.Decimal) (*ReceiptLine, error) {
	line, err := NewReceiptLine(g.ID, productID, productName, quantity, unitCost)
	if err != nil {
		return nil, err
	}
	g.Lines = append(g.Lines, *line)
	g.UpdatedAt = time.Now()
	return line, nil
}

// SetStatus moves the receipt to a new status and reports the stock effect
// relative to the previous persisted status supplied by the caller.
func (g *GoodsReceipt) SetStatus(previous, next ReceiptStatus) (StockEffect, error) {
	if !next.IsValid() {
		return StockEffectNone, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown receipt status %q", next))
	}
	effect := ReceiptTransitionEffect(previous, next)
	g.Status = next
	g.UpdatedAt = time.Now()
	g.IncrementVersion()
	return effect, nil
}

// IsCompleted returns true if the receipt is completed
func (g *GoodsReceipt) IsCompleted() bool {
	return g.Status == ReceiptStatusCompleted
}

// TotalValue returns the summed line value of the receipt
func (g *GoodsReceipt) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, line := range g.Lines {
		total = total.Add(line.LineValue())
	}
	return total
}
