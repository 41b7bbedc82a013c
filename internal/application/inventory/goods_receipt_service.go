package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GoodsReceiptService handles goods receipt operations. Status transitions
// apply their stock effect and the receipt save in one transaction, so a
// completed receipt and its stock increase are never observable apart.
type GoodsReceiptService struct {
	receiptRepo  inventory.GoodsReceiptRepository
	stockService *StockService
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewGoodsReceiptService creates a new GoodsReceiptService
func NewGoodsReceiptService(
	receiptRepo inventory.GoodsReceiptRepository,
	stockService *StockService,
	txScope TransactionScope,
	logger *zap.Logger,
) *GoodsReceiptService {
	return &GoodsReceiptService{
		receiptRepo:  receiptRepo,
		stockService: stockService,
		txScope:      txScope,
		logger:       logger,
	}
}

// CreateReceipt validates and stores a new pending goods receipt. No stock
// moves until the receipt is completed.
func (s *GoodsReceiptService) CreateReceipt(ctx context.Context, tenantID uuid.UUID, req SaveReceiptRequest) (*ReceiptResponse, error) {
	var response ReceiptResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.ReceiptRepo().GenerateNumber(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to generate receipt number: %w", err)
		}

		receipt, err := inventory.NewGoodsReceipt(tenantID, number, req.BranchID, req.SupplierID, req.ReceivedDate)
		if err != nil {
			return err
		}
		receipt.SupplierInvoiceNumber = req.SupplierInvoiceNumber
		receipt.Notes = req.Notes
		receipt.ReceivedBy = req.ReceivedBy

		if err := s.buildLines(ctx, repos, tenantID, receipt, req.Lines); err != nil {
			return err
		}
		if err := repos.ReceiptRepo().Save(ctx, receipt); err != nil {
			return fmt.Errorf("failed to save receipt: %w", err)
		}

		response = ToReceiptResponse(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Goods receipt created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("number", response.Number))
	return &response, nil
}

// UpdateReceipt replaces the header fields and lines of a pending receipt.
// Completed receipts must be reverted to pending before editing so their
// stock effect is unwound first.
func (s *GoodsReceiptService) UpdateReceipt(ctx context.Context, tenantID, receiptID uuid.UUID, req SaveReceiptRequest) (*ReceiptResponse, error) {
	var response ReceiptResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		receipt, err := repos.ReceiptRepo().FindByIDForTenant(ctx, tenantID, receiptID)
		if err != nil {
			return err
		}
		if receipt.IsCompleted() {
			return shared.NewDomainError("RECEIPT_COMPLETED", "A completed receipt cannot be edited; revert it to pending first")
		}

		receipt.BranchID = req.BranchID
		receipt.SupplierID = req.SupplierID
		receipt.SupplierInvoiceNumber = req.SupplierInvoiceNumber
		receipt.Notes = req.Notes
		if !req.ReceivedDate.IsZero() {
			receipt.ReceivedDate = req.ReceivedDate
		}

		receipt.Lines = receipt.Lines[:0]
		if err := s.buildLines(ctx, repos, tenantID, receipt, req.Lines); err != nil {
			return err
		}
		if err := repos.ReceiptRepo().ReplaceLines(ctx, receipt); err != nil {
			return fmt.Errorf("failed to replace receipt lines: %w", err)
		}
		if err := repos.ReceiptRepo().Save(ctx, receipt); err != nil {
			return fmt.Errorf("failed to save receipt: %w", err)
		}

		response = ToReceiptResponse(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// buildLines validates the requested lines against the catalog and attaches
// them to the receipt. Validation happens before any persistence so a bad
// line rejects the whole document.
func (s *GoodsReceiptService) buildLines(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, receipt *inventory.GoodsReceipt, lines []ReceiptLineRequest) error {
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "A goods receipt needs at least one line")
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := repos.ProductRepo().FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, l := range lines {
		product, ok := byID[l.ProductID]
		if !ok {
			return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %s does not exist", l.ProductID))
		}
		if !product.IsInventoryTracked {
			return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %s is not inventory tracked and cannot be received", product.Name))
		}
		if _, err := receipt.AddLine(l.ProductID, product.Name, l.Quantity, l.UnitCost); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus moves a receipt between PENDING, COMPLETED and CANCELLED. The
// previous status is whatever is persisted at the time of the call; the
// stock effect of the transition and the status change commit together.
func (s *GoodsReceiptService) SetStatus(ctx context.Context, tenantID, receiptID uuid.UUID, next inventory.ReceiptStatus) (*ReceiptResponse, error) {
	var response ReceiptResponse
	var effect inventory.StockEffect

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		receipt, err := repos.ReceiptRepo().FindByIDForTenant(ctx, tenantID, receiptID)
		if err != nil {
			return err
		}

		previous := receipt.Status
		effect, err = receipt.SetStatus(previous, next)
		if err != nil {
			return err
		}

		movements := make([]Movement, 0, len(receipt.Lines))
		for _, line := range receipt.Lines {
			movements = append(movements, Movement{
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Quantity:    line.QuantityReceived,
			})
		}

		switch effect {
		case inventory.StockEffectIncrease:
			if err := s.stockService.Increase(ctx, repos.StockRepo(), repos.ProductRepo(), tenantID, receipt.BranchID, movements); err != nil {
				return err
			}
		case inventory.StockEffectDecrease:
			if err := s.stockService.Decrease(ctx, repos.StockRepo(), repos.ProductRepo(), tenantID, receipt.BranchID, movements); err != nil {
				return err
			}
		}

		if err := repos.ReceiptRepo().Save(ctx, receipt); err != nil {
			return fmt.Errorf("failed to save receipt: %w", err)
		}
		response = ToReceiptResponse(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Goods receipt status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("receipt_id", receiptID.String()),
		zap.String("status", next.String()),
		zap.Int("stock_effect", int(effect)))
	return &response, nil
}

// GetReceipt loads a receipt with its lines
func (s *GoodsReceiptService) GetReceipt(ctx context.Context, tenantID, receiptID uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByIDForTenant(ctx, tenantID, receiptID)
	if err != nil {
		return nil, err
	}
	response := ToReceiptResponse(receipt)
	return &response, nil
}

// ListReceipts lists receipts for a tenant
func (s *GoodsReceiptService) ListReceipts(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToReceiptResponse(&receipts[i]))
	}
	return responses, nil
}
