package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/organization"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBusinessUnitRepository implements BusinessUnitRepository using GORM
type GormBusinessUnitRepository struct {
	db *gorm.DB
}

// NewGormBusinessUnitRepository creates a new GormBusinessUnitRepository
func NewGormBusinessUnitRepository(db *gorm.DB) *GormBusinessUnitRepository {
	return &GormBusinessUnitRepository{db: db}
}

// FindByID finds a business unit by its ID
func (r *GormBusinessUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.BusinessUnit, error) {
	var unit organization.BusinessUnit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByIDForTenant finds a business unit by ID within a tenant
func (r *GormBusinessUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*organization.BusinessUnit, error) {
	var unit organization.BusinessUnit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindChildren finds the direct children of a business unit
func (r *GormBusinessUnitRepository) FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]organization.BusinessUnit, error) {
	var units []organization.BusinessUnit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND parent_id = ?", tenantID, parentID).
		Order("name ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindByType finds business units of a given type
func (r *GormBusinessUnitRepository) FindByType(ctx context.Context, tenantID uuid.UUID, unitType organization.UnitType, filter shared.Filter) ([]organization.BusinessUnit, error) {
	query := r.db.WithContext(ctx).Model(&organization.BusinessUnit{}).
		Where("tenant_id = ? AND unit_type = ?", tenantID, unitType)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	var units []organization.BusinessUnit
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save creates or updates a business unit
func (r *GormBusinessUnitRepository) Save(ctx context.Context, unit *organization.BusinessUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// Ensure GormBusinessUnitRepository implements BusinessUnitRepository
var _ organization.BusinessUnitRepository = (*GormBusinessUnitRepository)(nil)
