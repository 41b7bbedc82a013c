package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPriceListRepository implements PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// FindByIDForTenant finds a price list by ID within a tenant
func (r *GormPriceListRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.PriceList, error) {
	var list catalog.PriceList
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindByCompany finds the price lists owned by a company unit
func (r *GormPriceListRepository) FindByCompany(ctx context.Context, tenantID, companyOwnerID uuid.UUID) ([]catalog.PriceList, error) {
	var lists []catalog.PriceList
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND company_owner_id = ?", tenantID, companyOwnerID).
		Order("name ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Save creates or updates a price list
func (r *GormPriceListRepository) Save(ctx context.Context, list *catalog.PriceList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Ensure GormPriceListRepository implements PriceListRepository
var _ catalog.PriceListRepository = (*GormPriceListRepository)(nil)
