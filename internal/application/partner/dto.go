package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	OwnerID             uuid.UUID       `json:"owner_id" binding:"required"`
	Name                string          `json:"name" binding:"required,min=1,max=255"`
	Phone               string          `json:"phone" binding:"max=50"`
	Email               string          `json:"email" binding:"omitempty,email,max=255"`
	Address             string          `json:"address" binding:"max=500"`
	TaxNumber           string          `json:"tax_number" binding:"max=100"`
	CanPurchaseOnCredit bool            `json:"can_purchase_on_credit"`
	CreditLimit         decimal.Decimal `json:"credit_limit"`
	Notes               string          `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name                *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Phone               *string          `json:"phone" binding:"omitempty,max=50"`
	Email               *string          `json:"email" binding:"omitempty,email,max=255"`
	Address             *string          `json:"address" binding:"omitempty,max=500"`
	TaxNumber           *string          `json:"tax_number" binding:"omitempty,max=100"`
	CanPurchaseOnCredit *bool            `json:"can_purchase_on_credit"`
	CreditLimit         *decimal.Decimal `json:"credit_limit"`
	IsActive            *bool            `json:"is_active"`
	Notes               *string          `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                  uuid.UUID       `json:"id"`
	OwnerID             uuid.UUID       `json:"owner_id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	Address             string          `json:"address"`
	TaxNumber           string          `json:"tax_number"`
	CanPurchaseOnCredit bool            `json:"can_purchase_on_credit"`
	CreditLimit         decimal.Decimal `json:"credit_limit"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	IsActive            bool            `json:"is_active"`
	Notes               string          `json:"notes"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ToCustomerResponse converts a customer to its API representation
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                  customer.ID,
		OwnerID:             customer.OwnerID,
		Name:                customer.Name,
		Phone:               customer.Phone,
		Email:               customer.Email,
		Address:             customer.Address,
		TaxNumber:           customer.TaxNumber,
		CanPurchaseOnCredit: customer.CanPurchaseOnCredit,
		CreditLimit:         customer.CreditLimit,
		CurrentBalance:      customer.CurrentBalance,
		IsActive:            customer.IsActive,
		Notes:               customer.Notes,
		CreatedAt:           customer.CreatedAt,
		UpdatedAt:           customer.UpdatedAt,
	}
}

// =============================================================================
// Ledger DTOs
// =============================================================================

// PostEntryRequest posts a manual entry to a customer's ledger
type PostEntryRequest struct {
	EntryType   string          `json:"entry_type" binding:"required,oneof=INVOICE PAYMENT CREDIT_NOTE DEBIT_NOTE OPENING"`
	EntryDate   time.Time       `json:"entry_date"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Reference   string          `json:"reference" binding:"max=100"`
	Description string          `json:"description"`
	RecordedBy  *uuid.UUID      `json:"-"` // Set from auth context
}

// UpdateEntryRequest replaces the amounts and metadata of an existing entry
type UpdateEntryRequest struct {
	EntryType   string          `json:"entry_type" binding:"required,oneof=INVOICE PAYMENT CREDIT_NOTE DEBIT_NOTE OPENING"`
	EntryDate   time.Time       `json:"entry_date"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Reference   string          `json:"reference" binding:"max=100"`
	Description string          `json:"description"`
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	EntryType   string          `json:"entry_type"`
	EntryDate   time.Time       `json:"entry_date"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	SaleID      *uuid.UUID      `json:"sale_id"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToLedgerEntryResponse converts a ledger entry to its API representation
func ToLedgerEntryResponse(entry *partner.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          entry.ID,
		CustomerID:  entry.CustomerID,
		EntryType:   entry.EntryType.String(),
		EntryDate:   entry.EntryDate,
		Debit:       entry.DebitAmount,
		Credit:      entry.CreditAmount,
		SaleID:      entry.SaleID,
		Reference:   entry.Reference,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}

// BalanceResponse reports a customer's running balance
type BalanceResponse struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}
