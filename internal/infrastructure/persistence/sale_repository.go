package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant finds a sale with its lines within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByNumber finds a sale by its document number for a tenant
func (r *GormSaleRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAllForTenant finds all sales for a tenant, optionally narrowed to a branch
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]*sales.Sale, error) {
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Preload("Lines").
		Where("tenant_id = ?", tenantID)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	query = r.applyFilter(query, filter)

	var result []*sales.Sale
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindByCustomer finds sales attached to a customer
func (r *GormSaleRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]*sales.Sale, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Sale{}).
			Preload("Lines").
			Where("tenant_id = ? AND customer_id = ?", tenantID, customerID),
		filter,
	)

	var result []*sales.Sale
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindLines reads back the persisted lines of a sale
func (r *GormSaleRepository) FindLines(ctx context.Context, saleID uuid.UUID) ([]sales.SaleLine, error) {
	var lines []sales.SaleLine
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save persists the sale header. Lines are managed via ReplaceLines.
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Omit("Lines").Save(sale).Error
}

// ReplaceLines swaps the sale's full line set in one operation
func (r *GormSaleRepository) ReplaceLines(ctx context.Context, saleID uuid.UUID, lines []sales.SaleLine) error {
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Delete(&sales.SaleLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// CountForTenant counts sales for a tenant
func (r *GormSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateNumber issues the next sale number for a tenant and sale date.
// Format: SAL-YYYYMMDD-NNNN (e.g., SAL-20260901-0001)
func (r *GormSaleRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	prefix := fmt.Sprintf("SAL-%s-", date.Format("20060102"))

	var lastSale sales.Sale
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("tenant_id = ? AND number LIKE ?", tenantID, prefix+"%").
		Order("number DESC").
		First(&lastSale).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastSale.Number != "" {
		parts := strings.Split(lastSale.Number, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}

// Delete removes a sale and its lines
func (r *GormSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&sales.SaleLine{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&sales.Sale{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_type":
			query = query.Where("payment_type = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "date_from":
			query = query.Where("sale_date >= ?", value)
		case "date_to":
			query = query.Where("sale_date <= ?", value)
		}
	}

	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
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

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
