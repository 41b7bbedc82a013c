package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is a party that buys from the business, optionally on credit.
// CurrentBalance is the running receivable: positive means the customer
// owes the business. It is only ever moved through ApplyBalanceDelta under
// a row lock, never recomputed from scratch on the write path.
type Customer struct {
	shared.TenantAggregateRoot
	OwnerID             uuid.UUID       `gorm:"type:uuid;not null;index"` // Owning company or branch unit
	Name                string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_owner_name,priority:2"`
	Phone               string          `gorm:"type:varchar(50)"`
	Email               string          `gorm:"type:varchar(255)"`
	Address             string          `gorm:"type:text"`
	TaxNumber           string          `gorm:"type:varchar(100)"`
	CanPurchaseOnCredit bool            `gorm:"not null;default:false"`
	CreditLimit         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentBalance      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive            bool            `gorm:"not null;default:true"`
	Notes               string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer owned by a business unit
func NewCustomer(tenantID, ownerID uuid.UUID, name string) (*Customer, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner unit ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OwnerID:             ownerID,
		Name:                name,
		CreditLimit:         decimal.Zero,
		CurrentBalance:      decimal.Zero,
		IsActive:            true,
	}, nil
}

// EnableCredit turns on on-account purchasing with the given limit
func (c *Customer) EnableCredit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_LIMIT", "Credit limit cannot be negative")
	}
	c.CanPurchaseOnCredit = true
	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	return nil
}

// DisableCredit turns off on-account purchasing. The balance stays as-is;
// outstanding receivables are still collected.
func (c *Customer) DisableCredit() {
	c.CanPurchaseOnCredit = false
	c.UpdatedAt = time.Now()
}

// ApplyBalanceDelta moves the running balance by a signed amount
func (c *Customer) ApplyBalanceDelta(delta decimal.Decimal) {
	c.CurrentBalance = c.CurrentBalance.Add(delta)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// WouldExceedCreditLimit reports whether adding the given debit would push
// the balance past the credit limit. A zero limit means unlimited, matching
// how new accounts are opened before a limit is agreed.
func (c *Customer) WouldExceedCreditLimit(debit decimal.Decimal) bool {
	if c.CreditLimit.IsZero() {
		return false
	}
	return c.CurrentBalance.Add(debit).GreaterThan(c.CreditLimit)
}

// CanBuyOnAccount checks whether an on-account sale of the given amount is allowed
func (c *Customer) CanBuyOnAccount(amount decimal.Decimal) error {
	if !c.IsActive {
		return shared.NewDomainError("CUSTOMER_INACTIVE", "Customer account is inactive")
	}
	if !c.CanPurchaseOnCredit {
		return shared.NewDomainError("CREDIT_NOT_ALLOWED", "Customer is not allowed to purchase on credit")
	}
	if c.WouldExceedCreditLimit(amount) {
		return shared.NewDomainError("CREDIT_LIMIT_EXCEEDED", "Sale would exceed the customer's credit limit")
	}
	return nil
}

// Deactivate marks the customer inactive
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}
