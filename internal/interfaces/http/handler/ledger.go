package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/retailpos/backend/internal/application/partner"
)

// LedgerHandler handles customer ledger API endpoints. Entries can be
// posted, amended and removed here, including invoice entries a sale
// posted; deleting one writes the invoice off the customer's balance.
type LedgerHandler struct {
	BaseHandler
	ledgerService *partnerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *partnerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// PostEntry handles POST /partner/customers/:id/ledger
func (h *LedgerHandler) PostEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.RecordedBy = getUserID(c)

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), tenantID, customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// UpdateEntry handles PUT /partner/ledger/:entry_id
func (h *LedgerHandler) UpdateEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	entryID, err := uuid.Parse(c.Param("entry_id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	var req partnerapp.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), tenantID, entryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// DeleteEntry handles DELETE /partner/ledger/:entry_id
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	entryID, err := uuid.Parse(c.Param("entry_id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), tenantID, entryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListEntries handles GET /partner/customers/:id/ledger
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	stringFilter(c, &filter, "entry_type")
	if err := boolFilter(c, &filter, "sale_owned"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := timeFilter(c, &filter, "date_from"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := timeFilter(c, &filter, "date_to"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), tenantID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, filter.Page, filter.PageSize, len(entries))
}

// Balance handles GET /partner/customers/:id/balance
func (h *LedgerHandler) Balance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	balance, err := h.ledgerService.CurrentBalance(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}

// Reconcile handles GET /partner/customers/:id/balance/reconcile. It reports
// both the stored balance and the one derived from ledger entries so drift
// can be spotted without mutating anything.
func (h *LedgerHandler) Reconcile(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	stored, derived, err := h.ledgerService.ReconcileBalance(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"stored":  stored,
		"derived": derived,
		"in_sync": stored.CurrentBalance.Equal(derived.CurrentBalance),
	})
}
