package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductType classifies how a product participates in stock and sales
type ProductType string

const (
	ProductTypeFinishedGood ProductType = "FINISHED"
	ProductTypeRawMaterial  ProductType = "RAW"
	ProductTypeService      ProductType = "SERVICE"
)

// IsValid checks if the product type is valid
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeFinishedGood, ProductTypeRawMaterial, ProductTypeService:
		return true
	}
	return false
}

// Product is catalog master data owned by a company-level business unit.
// The consistency core consumes it read-only; IsInventoryTracked is the
// single attribute the stock engine branches on.
type Product struct {
	shared.TenantAggregateRoot
	CompanyOwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name               string          `gorm:"type:varchar(255);not null"`
	Description        string          `gorm:"type:text"`
	SKU                string          `gorm:"type:varchar(100);uniqueIndex:idx_product_company_sku,priority:2"`
	Barcode            string          `gorm:"type:varchar(100)"`
	CategoryID         *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID         *uuid.UUID      `gorm:"type:uuid;index"`
	Type               ProductType     `gorm:"type:varchar(10);not null;default:'FINISHED'"`
	IsInventoryTracked bool            `gorm:"not null;default:true"`
	CostPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AllowDiscount      bool            `gorm:"not null;default:true"`
	MaxDiscountPercent *decimal.Decimal `gorm:"type:decimal(5,2)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product definition
func NewProduct(tenantID, companyOwnerID uuid.UUID, name, sku string, productType ProductType) (*Product, error) {
	if companyOwnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company owner ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Invalid product type")
	}

	tracked := productType != ProductTypeService

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CompanyOwnerID:      companyOwnerID,
		Name:                name,
		SKU:                 strings.ToUpper(sku),
		Type:                productType,
		IsInventoryTracked:  tracked,
		CostPrice:           decimal.Zero,
		AllowDiscount:       true,
	}, nil
}

// SetInventoryTracked toggles stock tracking for the product
func (p *Product) SetInventoryTracked(tracked bool) {
	p.IsInventoryTracked = tracked
}
