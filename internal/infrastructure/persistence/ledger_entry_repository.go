package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// FindByIDForTenant finds a ledger entry by ID within a tenant
func (r *GormLedgerEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.LedgerEntry, error) {
	var entry partner.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByCustomer lists a customer's entries, newest first
func (r *GormLedgerEntryRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]*partner.LedgerEntry, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.LedgerEntry{}).
			Where("tenant_id = ? AND customer_id = ?", tenantID, customerID),
		filter,
	)

	var entries []*partner.LedgerEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindBySale returns the entries posted by a sale
func (r *GormLedgerEntryRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*partner.LedgerEntry, error) {
	var entries []*partner.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumNetByCustomer recomputes the balance from entries for reconciliation
func (r *GormLedgerEntryRepository) SumNetByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&partner.LedgerEntry{}).
		Select("COALESCE(SUM(debit_amount - credit_amount), 0) as total").
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a ledger entry
func (r *GormLedgerEntryRepository) Save(ctx context.Context, entry *partner.LedgerEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a ledger entry
func (r *GormLedgerEntryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.LedgerEntry{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormLedgerEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "entry_type":
			query = query.Where("entry_type = ?", value)
		case "sale_owned":
			if value == true {
				query = query.Where("sale_id IS NOT NULL")
			}
		case "date_from":
			query = query.Where("entry_date >= ?", value)
		case "date_to":
			query = query.Where("entry_date <= ?", value)
		}
	}

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR description ILIKE ?", search, search)
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
		query = query.Order("entry_date DESC")
	}

	return query
}

// Ensure GormLedgerEntryRepository implements LedgerEntryRepository
var _ partner.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)
