package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Supplier is a goods provider managed at the company level.
// Referenced by goods receipts; otherwise read-only to the core.
type Supplier struct {
	shared.TenantAggregateRoot
	CompanyOwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_company_name,priority:2"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_supplier_company_name,priority:3"`
	ContactName    string    `gorm:"type:varchar(255)"`
	Phone          string    `gorm:"type:varchar(20)"`
	Email          string    `gorm:"type:varchar(200)"`
	Address        string    `gorm:"type:text"`
	TaxID          string    `gorm:"type:varchar(50)"`
	Notes          string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID, companyOwnerID uuid.UUID, name string) (*Supplier, error) {
	if companyOwnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company owner ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CompanyOwnerID:      companyOwnerID,
		Name:                name,
	}, nil
}
