package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductPriceRepository implements ProductPriceRepository using GORM
type GormProductPriceRepository struct {
	db *gorm.DB
}

// NewGormProductPriceRepository creates a new GormProductPriceRepository
func NewGormProductPriceRepository(db *gorm.DB) *GormProductPriceRepository {
	return &GormProductPriceRepository{db: db}
}

// FindForBranch resolves the price for a product on a price list. The
// branch-specific row wins over the company-wide row (branch_id NULL).
func (r *GormProductPriceRepository) FindForBranch(ctx context.Context, tenantID, productID, priceListID, branchID uuid.UUID) (*catalog.ProductPrice, error) {
	var price catalog.ProductPrice
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND price_list_id = ? AND branch_id = ?",
			tenantID, productID, priceListID, branchID).
		First(&price).Error
	if err == nil {
		return &price, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND price_list_id = ? AND branch_id IS NULL",
			tenantID, productID, priceListID).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// Save creates or updates a product price
func (r *GormProductPriceRepository) Save(ctx context.Context, price *catalog.ProductPrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

// Ensure GormProductPriceRepository implements ProductPriceRepository
var _ catalog.ProductPriceRepository = (*GormProductPriceRepository)(nil)
