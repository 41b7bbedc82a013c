package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Movement is one product quantity to apply against a branch's stock
type Movement struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
}

// StockService moves stock levels for document transitions. All mutating
// methods expect to run inside the caller's transaction and take the
// transaction-scoped repositories as arguments; every movement in a call
// either applies fully or not at all.
type StockService struct {
	stockRepo   inventory.StockLevelRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewStockService creates a new StockService. The injected repositories serve
// the read-only queries; mutations always go through repositories passed per call.
func NewStockService(stockRepo inventory.StockLevelRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// trackedProducts resolves which of the moved products carry inventory.
// Untracked products (services, fees) are skipped by every movement.
func trackedProducts(ctx context.Context, productRepo catalog.ProductRepository, tenantID uuid.UUID, movements []Movement) (map[uuid.UUID]bool, error) {
	ids := make([]uuid.UUID, 0, len(movements))
	seen := make(map[uuid.UUID]bool, len(movements))
	for _, m := range movements {
		if !seen[m.ProductID] {
			seen[m.ProductID] = true
			ids = append(ids, m.ProductID)
		}
	}

	products, err := productRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products for stock movement: %w", err)
	}
	if len(products) != len(ids) {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "One or more products on the document do not exist")
	}

	tracked := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		tracked[p.ID] = p.IsInventoryTracked
	}
	return tracked, nil
}

// Increase adds received quantities to branch stock, creating missing rows
// at a zero baseline. Used when a goods receipt enters COMPLETED.
func (s *StockService) Increase(ctx context.Context, stockRepo inventory.StockLevelRepository, productRepo catalog.ProductRepository, tenantID, branchID uuid.UUID, movements []Movement) error {
	tracked, err := trackedProducts(ctx, productRepo, tenantID, movements)
	if err != nil {
		return err
	}

	for _, m := range movements {
		if !tracked[m.ProductID] {
			continue
		}
		level, err := stockRepo.GetOrCreateForUpdate(ctx, tenantID, branchID, m.ProductID)
		if err != nil {
			return fmt.Errorf("failed to lock stock for product %s: %w", m.ProductID, err)
		}
		level.Add(m.Quantity)
		if err := stockRepo.Save(ctx, level); err != nil {
			return fmt.Errorf("failed to save stock for product %s: %w", m.ProductID, err)
		}
	}
	return nil
}

// Decrease subtracts previously received quantities from branch stock. Used
// when a completed goods receipt is reverted; the level may go negative when
// the received goods were already sold on. A missing row is a contract
// violation for a reversal, so it is created at zero and logged rather than
// skipped.
func (s *StockService) Decrease(ctx context.Context, stockRepo inventory.StockLevelRepository, productRepo catalog.ProductRepository, tenantID, branchID uuid.UUID, movements []Movement) error {
	tracked, err := trackedProducts(ctx, productRepo, tenantID, movements)
	if err != nil {
		return err
	}

	for _, m := range movements {
		if !tracked[m.ProductID] {
			continue
		}
		level, err := stockRepo.FindByBranchAndProductForUpdate(ctx, tenantID, branchID, m.ProductID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("failed to lock stock for product %s: %w", m.ProductID, err)
			}
			s.logger.Warn("Stock row missing while reversing a receipt, creating at zero",
				zap.String("tenant_id", tenantID.String()),
				zap.String("branch_id", branchID.String()),
				zap.String("product_id", m.ProductID.String()))
			level, err = stockRepo.GetOrCreateForUpdate(ctx, tenantID, branchID, m.ProductID)
			if err != nil {
				return fmt.Errorf("failed to create stock row for product %s: %w", m.ProductID, err)
			}
		}
		level.Add(m.Quantity.Neg())
		if err := stockRepo.Save(ctx, level); err != nil {
			return fmt.Errorf("failed to save stock for product %s: %w", m.ProductID, err)
		}
	}
	return nil
}

// Deduct removes sold quantities from branch stock. A pair with no stock row
// has zero on hand, so any tracked sale line against it fails with
// insufficient stock. The first failing line aborts the whole call.
func (s *StockService) Deduct(ctx context.Context, stockRepo inventory.StockLevelRepository, productRepo catalog.ProductRepository, tenantID, branchID uuid.UUID, movements []Movement) error {
	tracked, err := trackedProducts(ctx, productRepo, tenantID, movements)
	if err != nil {
		return err
	}

	for _, m := range movements {
		if !tracked[m.ProductID] {
			continue
		}
		level, err := stockRepo.FindByBranchAndProductForUpdate(ctx, tenantID, branchID, m.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %q: available 0, requested %s", m.ProductName, m.Quantity))
			}
			return fmt.Errorf("failed to lock stock for product %s: %w", m.ProductID, err)
		}
		if !level.CanFulfill(m.Quantity) {
			return shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for %q: available %s, requested %s", m.ProductName, level.Quantity, m.Quantity))
		}
		if err := level.Deduct(m.Quantity); err != nil {
			return err
		}
		if err := stockRepo.Save(ctx, level); err != nil {
			return fmt.Errorf("failed to save stock for product %s: %w", m.ProductID, err)
		}
	}
	return nil
}

// Restock returns previously deducted quantities to branch stock when a
// completed sale is reversed. A missing row means the level was removed
// after deduction; it is recreated at zero, logged, and the quantity is
// added back on top.
func (s *StockService) Restock(ctx context.Context, stockRepo inventory.StockLevelRepository, productRepo catalog.ProductRepository, tenantID, branchID uuid.UUID, movements []Movement) error {
	tracked, err := trackedProducts(ctx, productRepo, tenantID, movements)
	if err != nil {
		return err
	}

	for _, m := range movements {
		if !tracked[m.ProductID] {
			continue
		}
		level, err := stockRepo.FindByBranchAndProductForUpdate(ctx, tenantID, branchID, m.ProductID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("failed to lock stock for product %s: %w", m.ProductID, err)
			}
			s.logger.Warn("Stock row missing while restocking a reversed sale, creating at zero",
				zap.String("tenant_id", tenantID.String()),
				zap.String("branch_id", branchID.String()),
				zap.String("product_id", m.ProductID.String()))
			level, err = stockRepo.GetOrCreateForUpdate(ctx, tenantID, branchID, m.ProductID)
			if err != nil {
				return fmt.Errorf("failed to create stock row for product %s: %w", m.ProductID, err)
			}
		}
		level.Add(m.Quantity)
		if err := stockRepo.Save(ctx, level); err != nil {
			return fmt.Errorf("failed to save stock for product %s: %w", m.ProductID, err)
		}
	}
	return nil
}

// CurrentStock returns the on-hand quantity for a branch-product pair.
// Absence of a row reads as zero.
func (s *StockService) CurrentStock(ctx context.Context, tenantID, branchID, productID uuid.UUID) (decimal.Decimal, error) {
	level, err := s.stockRepo.FindByBranchAndProduct(ctx, tenantID, branchID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return level.Quantity, nil
}

// BranchStock lists the stock levels held at a branch
func (s *StockService) BranchStock(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) ([]StockLevelResponse, error) {
	levels, err := s.stockRepo.FindByBranch(ctx, tenantID, branchID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, ToStockLevelResponse(&levels[i]))
	}
	return responses, nil
}

// ProductTotal sums a product's on-hand quantity across all branches
func (s *StockService) ProductTotal(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	return s.stockRepo.SumQuantityByProduct(ctx, tenantID, productID)
}
