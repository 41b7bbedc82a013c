package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LedgerService posts, edits and reverses customer ledger entries. Every
// balance move happens under a customer row lock in the same transaction as
// the entry write, and the delta follows the debit and credit columns alone.
// That includes entries a sale posted: deleting one here is how a returned
// on-account sale's invoice is written off.
type LedgerService struct {
	customerRepo partner.CustomerRepository
	ledgerRepo   partner.LedgerEntryRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	customerRepo partner.CustomerRepository,
	ledgerRepo partner.LedgerEntryRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// PostEntry records a manual ledger entry and moves the customer balance by
// the entry's net amount
func (s *LedgerService) PostEntry(ctx context.Context, tenantID, customerID uuid.UUID, req PostEntryRequest) (*LedgerEntryResponse, error) {
	var response LedgerEntryResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, tenantID, customerID)
		if err != nil {
			return err
		}

		entry, err := partner.NewLedgerEntry(tenantID, customerID, partner.EntryType(req.EntryType), req.EntryDate, req.Debit, req.Credit)
		if err != nil {
			return err
		}
		entry.Reference = req.Reference
		entry.Description = req.Description
		entry.RecordedBy = req.RecordedBy

		if err := repos.LedgerRepo().Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save ledger entry: %w", err)
		}
		customer.ApplyBalanceDelta(entry.PostingDelta(nil))
		if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer balance: %w", err)
		}

		response = ToLedgerEntryResponse(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger entry posted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("entry_type", req.EntryType))
	return &response, nil
}

// UpdateEntry replaces an entry's amounts and metadata and moves the balance
// by the difference between the new and old net amounts
func (s *LedgerService) UpdateEntry(ctx context.Context, tenantID, entryID uuid.UUID, req UpdateEntryRequest) (*LedgerEntryResponse, error) {
	var response LedgerEntryResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.LedgerRepo().FindByIDForTenant(ctx, tenantID, entryID)
		if err != nil {
			return err
		}

		customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, tenantID, existing.CustomerID)
		if err != nil {
			return err
		}

		updated, err := partner.NewLedgerEntry(tenantID, existing.CustomerID, partner.EntryType(req.EntryType), req.EntryDate, req.Debit, req.Credit)
		if err != nil {
			return err
		}
		delta := updated.PostingDelta(existing)

		existing.EntryType = updated.EntryType
		existing.EntryDate = updated.EntryDate
		existing.DebitAmount = updated.DebitAmount
		existing.CreditAmount = updated.CreditAmount
		existing.Reference = req.Reference
		existing.Description = req.Description
		existing.IncrementVersion()

		if err := repos.LedgerRepo().Save(ctx, existing); err != nil {
			return fmt.Errorf("failed to save ledger entry: %w", err)
		}
		customer.ApplyBalanceDelta(delta)
		if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer balance: %w", err)
		}

		response = ToLedgerEntryResponse(existing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteEntry removes an entry and rolls its net amount out of the balance
func (s *LedgerService) DeleteEntry(ctx context.Context, tenantID, entryID uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.LedgerRepo().FindByIDForTenant(ctx, tenantID, entryID)
		if err != nil {
			return err
		}

		customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, tenantID, existing.CustomerID)
		if err != nil {
			return err
		}
		if err := repos.LedgerRepo().Delete(ctx, tenantID, entryID); err != nil {
			return fmt.Errorf("failed to delete ledger entry: %w", err)
		}
		customer.ApplyBalanceDelta(existing.ReversalDelta())
		if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Ledger entry deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entry_id", entryID.String()))
	return nil
}

// ListEntries lists a customer's ledger entries
func (s *LedgerService) ListEntries(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]LedgerEntryResponse, error) {
	entries, err := s.ledgerRepo.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToLedgerEntryResponse(entry))
	}
	return responses, nil
}

// CurrentBalance reports the customer's running balance
func (s *LedgerService) CurrentBalance(ctx context.Context, tenantID, customerID uuid.UUID) (*BalanceResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{CustomerID: customer.ID, CurrentBalance: customer.CurrentBalance}, nil
}

// ReconcileBalance recomputes the balance from the entries and reports both
// figures. The stored balance is authoritative on the write path; this read
// is for spotting drift.
func (s *LedgerService) ReconcileBalance(ctx context.Context, tenantID, customerID uuid.UUID) (stored, derived BalanceResponse, err error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return stored, derived, err
	}
	sum, err := s.ledgerRepo.SumNetByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return stored, derived, err
	}
	stored = BalanceResponse{CustomerID: customerID, CurrentBalance: customer.CurrentBalance}
	derived = BalanceResponse{CustomerID: customerID, CurrentBalance: sum}
	if !customer.CurrentBalance.Equal(sum) {
		s.logger.Warn("Customer balance drifted from ledger sum",
			zap.String("customer_id", customerID.String()),
			zap.String("stored", customer.CurrentBalance.String()),
			zap.String("derived", sum.String()))
	}
	return stored, derived, nil
}
