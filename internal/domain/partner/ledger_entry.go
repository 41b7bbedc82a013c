package partner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryType labels why a ledger entry exists. The label is descriptive only:
// balance math always follows the debit and credit columns, so a PAYMENT row
// carrying a debit amount moves the balance up like any other debit.
type EntryType string

const (
	EntryTypeInvoice    EntryType = "INVOICE"
	EntryTypePayment    EntryType = "PAYMENT"
	EntryTypeCreditNote EntryType = "CREDIT_NOTE"
	EntryTypeDebitNote  EntryType = "DEBIT_NOTE"
	EntryTypeOpening    EntryType = "OPENING"
)

// IsValid checks if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeInvoice, EntryTypePayment, EntryTypeCreditNote, EntryTypeDebitNote, EntryTypeOpening:
		return true
	}
	return false
}

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// LedgerEntry is one movement on a customer's receivable account. Debit
// increases what the customer owes, credit decreases it. Exactly one of the
// two may be positive.
type LedgerEntry struct {
	shared.TenantAggregateRoot
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntryType    EntryType       `gorm:"type:varchar(15);not null"`
	EntryDate    time.Time       `gorm:"not null"`
	DebitAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreditAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SaleID       *uuid.UUID      `gorm:"type:uuid;index"` // Set when the entry was posted by a sale
	Reference    string          `gorm:"type:varchar(100)"`
	Description  string          `gorm:"type:text"`
	RecordedBy   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "customer_ledger_entries"
}

// NewLedgerEntry creates a validated ledger entry
func NewLedgerEntry(tenantID, customerID uuid.UUID, entryType EntryType, entryDate time.Time, debit, credit decimal.Decimal) (*LedgerEntry, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", fmt.Sprintf("Unknown entry type %q", entryType))
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debit and credit amounts cannot be negative")
	}
	if debit.IsPositive() && credit.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "An entry cannot carry both a debit and a credit")
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	return &LedgerEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		EntryType:           entryType,
		EntryDate:           entryDate,
		DebitAmount:         debit,
		CreditAmount:        credit,
	}, nil
}

// AttachSale links the entry to the sale that produced it
func (e *LedgerEntry) AttachSale(saleID uuid.UUID) {
	e.SaleID = &saleID
	e.UpdatedAt = time.Now()
}

// NetAmount is the entry's signed effect on the balance (debit minus credit)
func (e *LedgerEntry) NetAmount() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}

// PostingDelta computes the balance adjustment for replacing an old entry
// state with this one. For a fresh entry pass nil as old.
func (e *LedgerEntry) PostingDelta(old *LedgerEntry) decimal.Decimal {
	if old == nil {
		return e.NetAmount()
	}
	return e.NetAmount().Sub(old.NetAmount())
}

// ReversalDelta computes the balance adjustment for deleting this entry
func (e *LedgerEntry) ReversalDelta() decimal.Decimal {
	return e.NetAmount().Neg()
}
