package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
)

// CatalogService manages products, suppliers and sale prices. All of it
// is master data the stock and sale engines consume read-only.
type CatalogService struct {
	productRepo   catalog.ProductRepository
	supplierRepo  catalog.SupplierRepository
	priceListRepo catalog.PriceListRepository
	priceRepo     catalog.ProductPriceRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	productRepo catalog.ProductRepository,
	supplierRepo catalog.SupplierRepository,
	priceListRepo catalog.PriceListRepository,
	priceRepo catalog.ProductPriceRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		priceListRepo: priceListRepo,
		priceRepo:     priceRepo,
	}
}

// CreateProduct creates a product definition
func (s *CatalogService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(tenantID, req.CompanyOwnerID, req.Name, req.SKU, catalog.ProductType(req.Type))
	if err != nil {
		return nil, err
	}
	product.Barcode = req.Barcode
	product.Description = req.Description
	product.SupplierID = req.SupplierID
	product.CategoryID = req.CategoryID
	if !req.CostPrice.IsZero() {
		if req.CostPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
		}
		product.CostPrice = req.CostPrice
	}
	if req.AllowDiscount != nil {
		product.AllowDiscount = *req.AllowDiscount
	}
	product.MaxDiscountPercent = req.MaxDiscountPercent

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// UpdateProduct applies partial updates to a product. SKU and owning
// company are fixed at creation.
func (s *CatalogService) UpdateProduct(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		product.Name = *req.Name
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *req.SupplierID); err != nil {
			return nil, err
		}
		product.SupplierID = req.SupplierID
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
		}
		product.CostPrice = *req.CostPrice
	}
	if req.IsInventoryTracked != nil {
		product.SetInventoryTracked(*req.IsInventoryTracked)
	}
	if req.AllowDiscount != nil {
		product.AllowDiscount = *req.AllowDiscount
	}
	if req.MaxDiscountPercent != nil {
		product.MaxDiscountPercent = req.MaxDiscountPercent
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct loads one product
func (s *CatalogService) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts lists the products owned by a company unit
func (s *CatalogService) ListProducts(ctx context.Context, tenantID, companyOwnerID uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByCompany(ctx, tenantID, companyOwnerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// CreateSupplier creates a supplier record
func (s *CatalogService) CreateSupplier(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := catalog.NewSupplier(tenantID, req.CompanyOwnerID, req.Name)
	if err != nil {
		return nil, err
	}
	supplier.ContactName = req.ContactName
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.TaxID = req.TaxID
	supplier.Notes = req.Notes

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// UpdateSupplier applies partial updates to a supplier
func (s *CatalogService) UpdateSupplier(ctx context.Context, tenantID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
		}
		supplier.Name = *req.Name
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.TaxID != nil {
		supplier.TaxID = *req.TaxID
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetSupplier loads one supplier
func (s *CatalogService) GetSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// CreatePriceList creates a named pricing scheme for a company
func (s *CatalogService) CreatePriceList(ctx context.Context, tenantID uuid.UUID, req CreatePriceListRequest) (*PriceListResponse, error) {
	list, err := catalog.NewPriceList(tenantID, req.CompanyOwnerID, req.Name, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.priceListRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	response := ToPriceListResponse(list)
	return &response, nil
}

// ListPriceLists lists the price lists owned by a company unit
func (s *CatalogService) ListPriceLists(ctx context.Context, tenantID, companyOwnerID uuid.UUID) ([]PriceListResponse, error) {
	lists, err := s.priceListRepo.FindByCompany(ctx, tenantID, companyOwnerID)
	if err != nil {
		return nil, err
	}
	responses := make([]PriceListResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, ToPriceListResponse(&lists[i]))
	}
	return responses, nil
}

// SetProductPrice creates or replaces the sale price for a product on a
// price list. An existing row for the same (product, list, branch) key
// is updated in place.
func (s *CatalogService) SetProductPrice(ctx context.Context, tenantID uuid.UUID, req SetProductPriceRequest) (*ProductPriceResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.priceListRepo.FindByIDForTenant(ctx, tenantID, req.PriceListID); err != nil {
		return nil, err
	}

	price, err := catalog.NewProductPrice(tenantID, req.ProductID, req.PriceListID, req.BranchID, req.SalePrice)
	if err != nil {
		return nil, err
	}

	branchID := uuid.Nil
	if req.BranchID != nil {
		branchID = *req.BranchID
	}
	existing, err := s.priceRepo.FindForBranch(ctx, tenantID, req.ProductID, req.PriceListID, branchID)
	if err == nil && sameBranch(existing.BranchID, req.BranchID) {
		existing.SalePrice = req.SalePrice
		price = existing
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.priceRepo.Save(ctx, price); err != nil {
		return nil, err
	}
	response := ToProductPriceResponse(price)
	return &response, nil
}

func sameBranch(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
