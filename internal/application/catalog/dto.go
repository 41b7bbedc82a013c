package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	CompanyOwnerID     uuid.UUID        `json:"company_owner_id" binding:"required"`
	Name               string           `json:"name" binding:"required,min=1,max=255"`
	SKU                string           `json:"sku" binding:"max=100"`
	Barcode            string           `json:"barcode" binding:"max=100"`
	Type               string           `json:"type" binding:"required,oneof=FINISHED RAW SERVICE"`
	SupplierID         *uuid.UUID       `json:"supplier_id"`
	CategoryID         *uuid.UUID       `json:"category_id"`
	Description        string           `json:"description"`
	CostPrice          decimal.Decimal  `json:"cost_price"`
	AllowDiscount      *bool            `json:"allow_discount"`
	MaxDiscountPercent *decimal.Decimal `json:"max_discount_percent"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name               *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Barcode            *string          `json:"barcode" binding:"omitempty,max=100"`
	SupplierID         *uuid.UUID       `json:"supplier_id"`
	CategoryID         *uuid.UUID       `json:"category_id"`
	Description        *string          `json:"description"`
	CostPrice          *decimal.Decimal `json:"cost_price"`
	IsInventoryTracked *bool            `json:"is_inventory_tracked"`
	AllowDiscount      *bool            `json:"allow_discount"`
	MaxDiscountPercent *decimal.Decimal `json:"max_discount_percent"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                 uuid.UUID        `json:"id"`
	CompanyOwnerID     uuid.UUID        `json:"company_owner_id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	SKU                string           `json:"sku"`
	Barcode            string           `json:"barcode"`
	Type               string           `json:"type"`
	SupplierID         *uuid.UUID       `json:"supplier_id"`
	CategoryID         *uuid.UUID       `json:"category_id"`
	IsInventoryTracked bool             `json:"is_inventory_tracked"`
	CostPrice          decimal.Decimal  `json:"cost_price"`
	AllowDiscount      bool             `json:"allow_discount"`
	MaxDiscountPercent *decimal.Decimal `json:"max_discount_percent"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                 product.ID,
		CompanyOwnerID:     product.CompanyOwnerID,
		Name:               product.Name,
		Description:        product.Description,
		SKU:                product.SKU,
		Barcode:            product.Barcode,
		Type:               string(product.Type),
		SupplierID:         product.SupplierID,
		CategoryID:         product.CategoryID,
		IsInventoryTracked: product.IsInventoryTracked,
		CostPrice:          product.CostPrice,
		AllowDiscount:      product.AllowDiscount,
		MaxDiscountPercent: product.MaxDiscountPercent,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	CompanyOwnerID uuid.UUID `json:"company_owner_id" binding:"required"`
	Name           string    `json:"name" binding:"required,min=1,max=255"`
	ContactName    string    `json:"contact_name" binding:"max=255"`
	Phone          string    `json:"phone" binding:"max=50"`
	Email          string    `json:"email" binding:"omitempty,email,max=255"`
	Address        string    `json:"address" binding:"max=500"`
	TaxID          string    `json:"tax_id" binding:"max=50"`
	Notes          string    `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	TaxID       *string `json:"tax_id" binding:"omitempty,max=50"`
	Notes       *string `json:"notes"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID             uuid.UUID `json:"id"`
	CompanyOwnerID uuid.UUID `json:"company_owner_id"`
	Name           string    `json:"name"`
	ContactName    string    `json:"contact_name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	TaxID          string    `json:"tax_id"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier to its API representation
func ToSupplierResponse(supplier *catalog.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:             supplier.ID,
		CompanyOwnerID: supplier.CompanyOwnerID,
		Name:           supplier.Name,
		ContactName:    supplier.ContactName,
		Phone:          supplier.Phone,
		Email:          supplier.Email,
		Address:        supplier.Address,
		TaxID:          supplier.TaxID,
		Notes:          supplier.Notes,
		CreatedAt:      supplier.CreatedAt,
		UpdatedAt:      supplier.UpdatedAt,
	}
}

// =============================================================================
// Price DTOs
// =============================================================================

// CreatePriceListRequest represents a request to create a price list
type CreatePriceListRequest struct {
	CompanyOwnerID uuid.UUID `json:"company_owner_id" binding:"required"`
	Name           string    `json:"name" binding:"required,min=1,max=100"`
	IsDefault      bool      `json:"is_default"`
}

// PriceListResponse represents a price list in API responses
type PriceListResponse struct {
	ID             uuid.UUID `json:"id"`
	CompanyOwnerID uuid.UUID `json:"company_owner_id"`
	Name           string    `json:"name"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToPriceListResponse converts a price list to its API representation
func ToPriceListResponse(list *catalog.PriceList) PriceListResponse {
	return PriceListResponse{
		ID:             list.ID,
		CompanyOwnerID: list.CompanyOwnerID,
		Name:           list.Name,
		IsDefault:      list.IsDefault,
		CreatedAt:      list.CreatedAt,
	}
}

// SetProductPriceRequest represents a request to set a sale price for a
// product on a price list, optionally scoped to a single branch
type SetProductPriceRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	PriceListID uuid.UUID       `json:"price_list_id" binding:"required"`
	BranchID    *uuid.UUID      `json:"branch_id"`
	SalePrice   decimal.Decimal `json:"sale_price" binding:"required"`
}

// ProductPriceResponse represents a product price in API responses
type ProductPriceResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	PriceListID uuid.UUID       `json:"price_list_id"`
	BranchID    *uuid.UUID      `json:"branch_id"`
	SalePrice   decimal.Decimal `json:"sale_price"`
}

// ToProductPriceResponse converts a product price to its API representation
func ToProductPriceResponse(price *catalog.ProductPrice) ProductPriceResponse {
	return ProductPriceResponse{
		ID:          price.ID,
		ProductID:   price.ProductID,
		PriceListID: price.PriceListID,
		BranchID:    price.BranchID,
		SalePrice:   price.SalePrice,
	}
}
