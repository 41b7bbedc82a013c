package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceResolver resolves the unit price for a product sold at a branch.
// A branch-specific price row wins over the company-wide row on the same
// price list; a product with neither cannot be sold without an explicit
// price on the request.
type PriceResolver struct {
	priceRepo catalog.ProductPriceRepository
}

// NewPriceResolver creates a new PriceResolver
func NewPriceResolver(priceRepo catalog.ProductPriceRepository) *PriceResolver {
	return &PriceResolver{priceRepo: priceRepo}
}

// Resolve returns the effective sale price for the product on the given
// price list at the given branch
func (r *PriceResolver) Resolve(ctx context.Context, tenantID, productID, priceListID, branchID uuid.UUID) (decimal.Decimal, error) {
	price, err := r.priceRepo.FindForBranch(ctx, tenantID, productID, priceListID, branchID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, shared.NewDomainError("PRICE_NOT_FOUND",
				fmt.Sprintf("No price configured for product %s on the selected price list", productID))
		}
		return decimal.Zero, err
	}
	return price.SalePrice, nil
}
