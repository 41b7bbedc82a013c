package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ProductRepository defines read access to the product catalog
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindByCompany(ctx context.Context, tenantID, companyOwnerID uuid.UUID, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
}

// SupplierRepository defines read access to suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
}

// PriceListRepository manages the named pricing schemes of a company
type PriceListRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PriceList, error)
	FindByCompany(ctx context.Context, tenantID, companyOwnerID uuid.UUID) ([]PriceList, error)
	Save(ctx context.Context, list *PriceList) error
}

// ProductPriceRepository resolves sale prices per price list and branch
type ProductPriceRepository interface {
	// FindForBranch returns the branch-specific price row if one exists,
	// otherwise the company-wide row (BranchID NULL), otherwise ErrNotFound.
	FindForBranch(ctx context.Context, tenantID, productID, priceListID, branchID uuid.UUID) (*ProductPrice, error)
	Save(ctx context.Context, price *ProductPrice) error
}
