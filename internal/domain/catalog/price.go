package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceList names a pricing scheme (retail, wholesale, dine-in, ...)
type PriceList struct {
	shared.TenantAggregateRoot
	CompanyOwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_price_list_company_name,priority:2"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_price_list_company_name,priority:3"`
	IsDefault      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PriceList) TableName() string {
	return "price_lists"
}

// NewPriceList creates a new price list
func NewPriceList(tenantID, companyOwnerID uuid.UUID, name string, isDefault bool) (*PriceList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Price list name cannot be empty")
	}
	return &PriceList{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CompanyOwnerID:      companyOwnerID,
		Name:                name,
		IsDefault:           isDefault,
	}, nil
}

// ProductPrice is a sale price for a product on a price list. A nil BranchID
// means the price applies company-wide; a branch-specific row overrides it.
type ProductPrice struct {
	shared.TenantAggregateRoot
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_price_key,priority:2"`
	PriceListID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_price_key,priority:3"`
	BranchID    *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_product_price_key,priority:4"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductPrice) TableName() string {
	return "product_prices"
}

// NewProductPrice creates a price row for a product on a price list
func NewProductPrice(tenantID, productID, priceListID uuid.UUID, branchID *uuid.UUID, salePrice decimal.Decimal) (*ProductPrice, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if priceListID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST", "Price list ID cannot be empty")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	return &ProductPrice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		PriceListID:         priceListID,
		BranchID:            branchID,
		SalePrice:           salePrice,
	}, nil
}

// IsBranchSpecific returns true when the price targets a single branch
func (p *ProductPrice) IsBranchSpecific() bool {
	return p.BranchID != nil
}
