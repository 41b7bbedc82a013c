package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByID finds a stock level by its ID
func (r *GormStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByBranchAndProduct finds the stock level for a branch-product pair
func (r *GormStockLevelRepository) FindByBranchAndProduct(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND product_id = ?", tenantID, branchID, productID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByBranchAndProductForUpdate loads the row under a pessimistic lock.
// Must be called inside a transaction or the lock is released immediately.
func (r *GormStockLevelRepository) FindByBranchAndProductForUpdate(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND branch_id = ? AND product_id = ?", tenantID, branchID, productID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// GetOrCreateForUpdate returns the locked row for a branch-product pair,
// creating a zero-quantity row first when none exists. The ON CONFLICT
// guard handles two transactions racing to create the same pair.
func (r *GormStockLevelRepository) GetOrCreateForUpdate(ctx context.Context, tenantID, branchID, productID uuid.UUID) (*inventory.StockLevel, error) {
	level, err := r.FindByBranchAndProductForUpdate(ctx, tenantID, branchID, productID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	level, err = inventory.NewStockLevel(tenantID, branchID, productID)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "branch_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(level).Error; err != nil {
		return nil, err
	}

	// Re-fetch under the lock so the caller always holds the row
	return r.FindByBranchAndProductForUpdate(ctx, tenantID, branchID, productID)
}

// FindByBranch finds all stock levels at a branch
func (r *GormStockLevelRepository) FindByBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockLevel{}).
			Where("tenant_id = ? AND branch_id = ?", tenantID, branchID),
		filter,
	)

	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Save creates or updates a stock level
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// SumQuantityByProduct sums on-hand quantity for a product across branches
func (r *GormStockLevelRepository) SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockLevel{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter options to the query
func (r *GormStockLevelRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		case "negative":
			if value == true {
				query = query.Where("quantity < 0")
			}
		}
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
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormStockLevelRepository implements StockLevelRepository
var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
