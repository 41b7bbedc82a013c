package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appinv "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService handles the sale lifecycle. Saves are two-phase: lines are
// persisted first, then totals are recomputed from the stored lines, so the
// header always reflects committed line state. Status transitions bundle
// the stock movement, any ledger posting and the sale save into one
// transaction.
type SaleService struct {
	saleRepo      sales.SaleRepository
	stockService  *appinv.StockService
	priceResolver *PriceResolver
	txScope       TransactionScope
	logger        *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sales.SaleRepository,
	stockService *appinv.StockService,
	priceResolver *PriceResolver,
	txScope TransactionScope,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:      saleRepo,
		stockService:  stockService,
		priceResolver: priceResolver,
		txScope:       txScope,
		logger:        logger,
	}
}

// CreateSale validates and stores a new pending sale. Stock and the
// customer ledger are untouched until the sale is completed.
func (s *SaleService) CreateSale(ctx context.Context, tenantID uuid.UUID, req SaveSaleRequest) (*SaleResponse, error) {
	paymentType := sales.PaymentType(req.PaymentType)
	if paymentType.IsOnAccount() && req.CustomerID == nil {
		return nil, shared.NewDomainError("CUSTOMER_REQUIRED", "An on-account sale needs a customer")
	}

	var response SaleResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.SaleRepo().GenerateNumber(ctx, tenantID, req.SaleDate)
		if err != nil {
			return fmt.Errorf("failed to generate sale number: %w", err)
		}

		sale, err := sales.NewSale(tenantID, number, req.BranchID, req.SaleDate)
		if err != nil {
			return err
		}
		sale.Notes = req.Notes
		sale.ProcessedBy = req.ProcessedBy
		if req.CustomerID != nil {
			if _, err := repos.CustomerRepo().FindByIDForTenant(ctx, tenantID, *req.CustomerID); err != nil {
				return err
			}
			if err := sale.SetCustomer(*req.CustomerID); err != nil {
				return err
			}
		}

		if err := s.buildLines(ctx, repos, tenantID, sale, req); err != nil {
			return err
		}
		if err := sale.SetDiscountAndTax(req.DiscountAmount, req.TaxAmount); err != nil {
			return err
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}
		if err := repos.SaleRepo().ReplaceLines(ctx, sale.ID, sale.Lines); err != nil {
			return fmt.Errorf("failed to save sale lines: %w", err)
		}

		if err := s.recomputeAndSettle(ctx, repos, sale, paymentType, req.AmountPaid); err != nil {
			return err
		}
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("number", response.Number))
	return &response, nil
}

// UpdateSale replaces the lines and settlement details of a pending sale.
// Completed sales must be reverted first so their stock and ledger effects
// are unwound before the document changes underneath them.
func (s *SaleService) UpdateSale(ctx context.Context, tenantID, saleID uuid.UUID, req SaveSaleRequest) (*SaleResponse, error) {
	paymentType := sales.PaymentType(req.PaymentType)
	if paymentType.IsOnAccount() && req.CustomerID == nil {
		return nil, shared.NewDomainError("CUSTOMER_REQUIRED", "An on-account sale needs a customer")
	}

	var response SaleResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if sale.Status != sales.SaleStatusPending {
			return shared.NewDomainError("SALE_NOT_EDITABLE", "Only pending sales can be edited; revert the sale first")
		}

		sale.BranchID = req.BranchID
		sale.Notes = req.Notes
		if !req.SaleDate.IsZero() {
			sale.SaleDate = req.SaleDate
		}
		sale.CustomerID = nil
		if req.CustomerID != nil {
			if _, err := repos.CustomerRepo().FindByIDForTenant(ctx, tenantID, *req.CustomerID); err != nil {
				return err
			}
			if err := sale.SetCustomer(*req.CustomerID); err != nil {
				return err
			}
		}

		sale.Lines = sale.Lines[:0]
		if err := s.buildLines(ctx, repos, tenantID, sale, req); err != nil {
			return err
		}
		if err := sale.SetDiscountAndTax(req.DiscountAmount, req.TaxAmount); err != nil {
			return err
		}
		if err := repos.SaleRepo().ReplaceLines(ctx, sale.ID, sale.Lines); err != nil {
			return fmt.Errorf("failed to replace sale lines: %w", err)
		}

		if err := s.recomputeAndSettle(ctx, repos, sale, paymentType, req.AmountPaid); err != nil {
			return err
		}
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// buildLines validates the requested lines against the catalog, resolves
// prices and attaches the lines to the sale. Validation happens before any
// persistence so a bad line rejects the whole document.
func (s *SaleService) buildLines(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, sale *sales.Sale, req SaveSaleRequest) error {
	if len(req.Lines) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "A sale needs at least one line")
	}

	ids := make([]uuid.UUID, 0, len(req.Lines))
	for _, l := range req.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := repos.ProductRepo().FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uuid.UUID]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	resolver := s.priceResolver
	if resolver == nil {
		resolver = NewPriceResolver(repos.PriceRepo())
	}

	for _, l := range req.Lines {
		idx, ok := byID[l.ProductID]
		if !ok {
			return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %s does not exist", l.ProductID))
		}
		product := products[idx]

		var unitPrice decimal.Decimal
		if l.UnitPrice != nil {
			unitPrice = *l.UnitPrice
		} else {
			if req.PriceListID == nil {
				return shared.NewDomainError("PRICE_NOT_FOUND",
					fmt.Sprintf("No price given for %q and no price list selected", product.Name))
			}
			unitPrice, err = resolver.Resolve(ctx, tenantID, l.ProductID, *req.PriceListID, req.BranchID)
			if err != nil {
				return err
			}
		}

		if l.ItemDiscount.IsPositive() {
			if !product.AllowDiscount {
				return shared.NewDomainError("DISCOUNT_NOT_ALLOWED",
					fmt.Sprintf("Product %q cannot be discounted", product.Name))
			}
			if product.MaxDiscountPercent != nil {
				lineGross := l.Quantity.Mul(unitPrice)
				if lineGross.IsPositive() {
					pct := l.ItemDiscount.Div(lineGross).Mul(decimal.NewFromInt(100))
					if pct.GreaterThan(*product.MaxDiscountPercent) {
						return shared.NewDomainError("DISCOUNT_TOO_HIGH",
							fmt.Sprintf("Discount on %q exceeds the allowed %s%%", product.Name, product.MaxDiscountPercent))
					}
				}
			}
		}

		if _, err := sale.AddLine(l.ProductID, product.Name, l.Quantity, unitPrice, l.ItemDiscount); err != nil {
			return err
		}
	}
	return nil
}

// recomputeAndSettle reads the persisted lines back, recomputes the totals
// from them, applies the payment and saves the header
func (s *SaleService) recomputeAndSettle(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale, paymentType sales.PaymentType, amountPaid decimal.Decimal) error {
	stored, err := repos.SaleRepo().FindLines(ctx, sale.ID)
	if err != nil {
		return fmt.Errorf("failed to read back sale lines: %w", err)
	}
	sale.RecomputeTotals(stored)
	if err := sale.SetPayment(paymentType, amountPaid); err != nil {
		return err
	}
	if err := repos.SaleRepo().Save(ctx, sale); err != nil {
		return fmt.Errorf("failed to save sale: %w", err)
	}
	return nil
}

// RecomputeTotals re-derives a sale's totals from its stored lines and
// saves the header. Exposed for repair flows; normal saves already do this.
func (s *SaleService) RecomputeTotals(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	var response SaleResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		stored, err := repos.SaleRepo().FindLines(ctx, sale.ID)
		if err != nil {
			return err
		}
		sale.RecomputeTotals(stored)
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// SetStatus moves a sale between PENDING, COMPLETED, CANCELLED and REFUNDED.
// The previous status is whatever is persisted at the time of the call. The
// decided stock action, any customer ledger posting or reversal, and the
// sale save all commit together.
func (s *SaleService) SetStatus(ctx context.Context, tenantID, saleID uuid.UUID, next sales.SaleStatus) (*SaleResponse, error) {
	var response SaleResponse
	var action sales.StockAction

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}

		previous := sale.Status
		action, err = sales.SaleTransition(previous, next, sale.StockDeducted)
		if err != nil {
			return err
		}

		movements := make([]appinv.Movement, 0, len(sale.Lines))
		for _, line := range sale.Lines {
			movements = append(movements, appinv.Movement{
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
			})
		}

		switch action {
		case sales.StockActionDeduct:
			if err := s.stockService.Deduct(ctx, repos.StockRepo(), repos.ProductRepo(), tenantID, sale.BranchID, movements); err != nil {
				return err
			}
			if sale.IsOnAccount() {
				if err := s.postInvoiceEntry(ctx, repos, sale); err != nil {
					return err
				}
			}
		case sales.StockActionRestock:
			// Stock only. Posted invoice entries stay on the ledger; a
			// return is settled by an explicit credit note, not by the
			// state machine.
			if err := s.stockService.Restock(ctx, repos.StockRepo(), repos.ProductRepo(), tenantID, sale.BranchID, movements); err != nil {
				return err
			}
		}

		if err := sale.ApplyTransition(next, action); err != nil {
			return err
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_id", saleID.String()),
		zap.String("status", next.String()),
		zap.Int("stock_action", int(action)))
	return &response, nil
}

// postInvoiceEntry debits the customer's account with the sale's grand total.
// The customer row is locked so concurrent postings serialize, and the
// credit check runs against the locked balance. A sale that already has
// ledger entries (reverted and re-completed) is not invoiced twice.
func (s *SaleService) postInvoiceEntry(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale) error {
	if sale.CustomerID == nil {
		return shared.NewDomainError("CUSTOMER_REQUIRED", "An on-account sale needs a customer")
	}

	existing, err := repos.LedgerRepo().FindBySale(ctx, sale.TenantID, sale.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, sale.TenantID, *sale.CustomerID)
	if err != nil {
		return err
	}
	if err := customer.CanBuyOnAccount(sale.GrandTotal); err != nil {
		return err
	}

	entry, err := partner.NewLedgerEntry(sale.TenantID, customer.ID, partner.EntryTypeInvoice, sale.SaleDate, sale.GrandTotal, decimal.Zero)
	if err != nil {
		return err
	}
	entry.AttachSale(sale.ID)
	entry.Reference = sale.Number

	if err := repos.LedgerRepo().Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}
	customer.ApplyBalanceDelta(entry.PostingDelta(nil))
	if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
		return fmt.Errorf("failed to save customer balance: %w", err)
	}
	return nil
}

// GetSale loads a sale with its lines
func (s *SaleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// ListSales lists sales for a tenant, optionally narrowed to a branch
func (s *SaleService) ListSales(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, filter shared.Filter) ([]SaleResponse, error) {
	found, err := s.saleRepo.FindAllForTenant(ctx, tenantID, branchID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]SaleResponse, 0, len(found))
	for _, sale := range found {
		responses = append(responses, ToSaleResponse(sale))
	}
	return responses, nil
}
