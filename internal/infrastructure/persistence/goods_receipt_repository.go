package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormGoodsReceiptRepository implements GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{db: db}
}

// FindByID finds a goods receipt by its ID
func (r *GormGoodsReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.GoodsReceipt, error) {
	var receipt inventory.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByIDForTenant finds a goods receipt by ID within a tenant
func (r *GormGoodsReceiptRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.GoodsReceipt, error) {
	var receipt inventory.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByNumber finds a goods receipt by its document number for a tenant
func (r *GormGoodsReceiptRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*inventory.GoodsReceipt, error) {
	var receipt inventory.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindAllForTenant finds all goods receipts for a tenant with filtering
func (r *GormGoodsReceiptRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.GoodsReceipt, error) {
	var receipts []inventory.GoodsReceipt
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.GoodsReceipt{}).
			Preload("Lines").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Save persists the receipt header. Lines are managed via ReplaceLines so a
// header update never silently rewrites the line set.
func (r *GormGoodsReceiptRepository) Save(ctx context.Context, receipt *inventory.GoodsReceipt) error {
	return r.db.WithContext(ctx).Omit("Lines").Save(receipt).Error
}

// ReplaceLines swaps the receipt's full line set in one operation
func (r *GormGoodsReceiptRepository) ReplaceLines(ctx context.Context, receipt *inventory.GoodsReceipt) error {
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receipt.ID).
		Delete(&inventory.ReceiptLine{}).Error; err != nil {
		return err
	}
	if len(receipt.Lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&receipt.Lines).Error
}

// GenerateNumber issues the next receipt number for a tenant.
// Format: GRN-YYYY-NNNNN (e.g., GRN-2026-00001)
func (r *GormGoodsReceiptRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("GRN-%d-", year)

	var lastReceipt inventory.GoodsReceipt
	err := r.db.WithContext(ctx).
		Model(&inventory.GoodsReceipt{}).
		Where("tenant_id = ? AND number LIKE ?", tenantID, prefix+"%").
		Order("number DESC").
		First(&lastReceipt).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastReceipt.Number != "" {
		parts := strings.Split(lastReceipt.Number, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// applyFilter applies filter options to the query
func (r *GormGoodsReceiptRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "date_from":
			query = query.Where("received_date >= ?", value)
		case "date_to":
			query = query.Where("received_date <= ?", value)
		}
	}

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR supplier_invoice_number ILIKE ?", search, search)
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

// Ensure GormGoodsReceiptRepository implements GoodsReceiptRepository
var _ inventory.GoodsReceiptRepository = (*GormGoodsReceiptRepository)(nil)
