package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle state of a sale transaction
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// PaymentType represents how a sale was settled
type PaymentType string

const (
	PaymentTypeCash         PaymentType = "CASH"
	PaymentTypeCard         PaymentType = "CARD"
	PaymentTypeMobileWallet PaymentType = "MOBILE"
	PaymentTypeBankTransfer PaymentType = "BANK"
	PaymentTypeOnAccount    PaymentType = "ACCOUNT"
	PaymentTypeVoucher      PaymentType = "VOUCHER"
	PaymentTypeOther        PaymentType = "OTHER"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeMobileWallet,
		PaymentTypeBankTransfer, PaymentTypeOnAccount, PaymentTypeVoucher, PaymentTypeOther:
		return true
	}
	return false
}

// IsOnAccount returns true for credit sales settled against a customer balance
func (t PaymentType) IsOnAccount() bool {
	return t == PaymentTypeOnAccount
}

// StockAction is the inventory side-effect a sale save must perform
type StockAction int

const (
	// StockActionNone leaves inventory untouched
	StockActionNone StockAction = iota
	// StockActionDeduct removes each tracked line's quantity from stock
	StockActionDeduct
	// StockActionRestock returns each tracked line's quantity to stock
	StockActionRestock
)

// SaleTransition decides the stock action for a sale save. Both statuses come
// from storage (previous is what was persisted, next is what is requested);
// stockDeducted is the persisted side-effect flag. Deduction fires on every
// entry into COMPLETED that has not already deducted; restock fires on every
// exit from COMPLETED that had. A sale that leaves and re-enters COMPLETED
// deducts again - the effect is per transition, not per state.
func SaleTransition(previous, next SaleStatus, stockDeducted bool) (StockAction, error) {
	if next == SaleStatusCompleted && !stockDeducted {
		return StockActionDeduct, nil
	}
	if previous == SaleStatusCompleted && next != SaleStatusCompleted {
		if !stockDeducted {
			// Leaving COMPLETED without the flag set means either the
			// deduction never happened or it was already reversed. Either
			// way reversing now would corrupt stock.
			return StockActionNone, shared.ErrConsistencyFault
		}
		return StockActionRestock, nil
	}
	return StockActionNone, nil
}

// SaleLine is one sold product on a sale
type SaleLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"type:varchar(255);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Price captured at sale time
	ItemDiscount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (SaleLine) TableName() string {
	return "sale_lines"
}

// NewSaleLine creates a sale line and computes its total
func NewSaleLine(saleID, productID uuid.UUID, productName string, quantity, unitPrice, itemDiscount decimal.Decimal) (*SaleLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if itemDiscount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Item discount cannot be negative")
	}

	now := time.Now()
	line := &SaleLine{
		ID:           uuid.New(),
		SaleID:       saleID,
		ProductID:    productID,
		ProductName:  productName,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		ItemDiscount: itemDiscount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	line.ComputeTotal()
	return line, nil
}

// ComputeTotal recalculates the line total from quantity, price and discount
func (l *SaleLine) ComputeTotal() {
	l.LineTotal = l.Quantity.Mul(l.UnitPrice).Sub(l.ItemDiscount)
	l.UpdatedAt = time.Now()
}

// Sale is a point-of-sale transaction aggregate root. Its financial totals
// are derived from persisted lines; StockDeducted records whether the
// inventory side-effect of completion has fired.
type Sale struct {
	shared.TenantAggregateRoot
	Number         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_tenant_number,priority:2"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid;index"`
	SaleDate       time.Time       `gorm:"not null"`
	Status         SaleStatus      `gorm:"type:varchar(10);not null;default:'PENDING'"`
	PaymentType    PaymentType     `gorm:"type:varchar(10)"`
	SubTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ChangeDue      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockDeducted  bool            `gorm:"not null;default:false"`
	Notes          string          `gorm:"type:text"`
	ProcessedBy    *uuid.UUID      `gorm:"type:uuid"`
	Lines          []SaleLine      `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a pending sale
func NewSale(tenantID uuid.UUID, number string, branchID uuid.UUID, saleDate time.Time) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Sale number cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		BranchID:            branchID,
		SaleDate:            saleDate,
		Status:              SaleStatusPending,
		SubTotal:            decimal.Zero,
		DiscountAmount:      decimal.Zero,
		TaxAmount:           decimal.Zero,
		GrandTotal:          decimal.Zero,
		AmountPaid:          decimal.Zero,
		ChangeDue:           decimal.Zero,
		Lines:               make([]SaleLine, 0),
	}, nil
}

// AddLine appends a validated line to the sale
func (s *Sale) AddLine(productID uuid.UUID, productName string, quantity, unitPrice, itemDiscount decimal.Decimal) (*SaleLine, error) {
	line, err := NewSaleLine(s.ID, productID, productName, quantity, unitPrice, itemDiscount)
	if err != nil {
		return nil, err
	}
	s.Lines = append(s.Lines, *line)
	s.UpdatedAt = time.Now()
	return line, nil
}

// SetCustomer attaches a customer to the sale
func (s *Sale) SetCustomer(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	s.CustomerID = &customerID
	s.UpdatedAt = time.Now()
	return nil
}

// SetPayment records the settlement details and derives change due.
// Change is only meaningful for immediate settlements; on-account sales
// carry the open amount on the customer ledger instead.
func (s *Sale) SetPayment(paymentType PaymentType, amountPaid decimal.Decimal) error {
	if !paymentType.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", fmt.Sprintf("Unknown payment type %q", paymentType))
	}
	if amountPaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount paid cannot be negative")
	}

	s.PaymentType = paymentType
	s.AmountPaid = amountPaid
	if paymentType.IsOnAccount() {
		s.ChangeDue = decimal.Zero
	} else {
		change := amountPaid.Sub(s.GrandTotal)
		if change.IsNegative() {
			change = decimal.Zero
		}
		s.ChangeDue = change
	}
	s.UpdatedAt = time.Now()
	return nil
}

// RecomputeTotals derives the financial totals from the given persisted
// lines. Callers pass the lines as read back from storage so the totals only
// ever reflect committed line state. Recomputing twice with the same lines
// yields identical totals.
func (s *Sale) RecomputeTotals(lines []SaleLine) {
	subTotal := decimal.Zero
	for _, line := range lines {
		subTotal = subTotal.Add(line.LineTotal)
	}
	s.SubTotal = subTotal
	s.GrandTotal = s.SubTotal.Sub(s.DiscountAmount).Add(s.TaxAmount)
	s.UpdatedAt = time.Now()
}

// SetDiscountAndTax sets the order-level adjustments feeding the grand total
func (s *Sale) SetDiscountAndTax(discount, tax decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_TAX", "Tax amount cannot be negative")
	}
	s.DiscountAmount = discount
	s.TaxAmount = tax
	s.UpdatedAt = time.Now()
	return nil
}

// ApplyTransition records the requested status and flips the StockDeducted
// flag to match the action the caller is about to carry out. The action must
// come from SaleTransition over the persisted previous status.
func (s *Sale) ApplyTransition(next SaleStatus, action StockAction) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown sale status %q", next))
	}

	s.Status = next
	switch action {
	case StockActionDeduct:
		s.StockDeducted = true
	case StockActionRestock:
		s.StockDeducted = false
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsCompleted returns true if the sale is completed
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// IsOnAccount returns true if the sale is settled against a customer balance
func (s *Sale) IsOnAccount() bool {
	return s.PaymentType.IsOnAccount()
}
