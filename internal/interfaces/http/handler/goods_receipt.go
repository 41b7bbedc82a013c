package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
)

// GoodsReceiptHandler handles goods receipt API endpoints
type GoodsReceiptHandler struct {
	BaseHandler
	receiptService *inventoryapp.GoodsReceiptService
}

// NewGoodsReceiptHandler creates a new GoodsReceiptHandler
func NewGoodsReceiptHandler(receiptService *inventoryapp.GoodsReceiptService) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{receiptService: receiptService}
}

// Create handles POST /inventory/receipts
func (h *GoodsReceiptHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	var req inventoryapp.SaveReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.ReceivedBy = getUserID(c)

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, receipt)
}

// Update handles PUT /inventory/receipts/:id. Only pending receipts accept
// header or line changes.
func (h *GoodsReceiptHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req inventoryapp.SaveReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.ReceivedBy = getUserID(c)

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), tenantID, receiptID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// SetStatus handles POST /inventory/receipts/:id/status. Completing a
// pending receipt applies its lines to stock; cancelling a completed one
// reverses them.
func (h *GoodsReceiptHandler) SetStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req inventoryapp.SetReceiptStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	receipt, err := h.receiptService.SetStatus(c.Request.Context(), tenantID, receiptID, inventory.ReceiptStatus(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// GetByID handles GET /inventory/receipts/:id
func (h *GoodsReceiptHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), tenantID, receiptID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List handles GET /inventory/receipts
func (h *GoodsReceiptHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	stringFilter(c, &filter, "branch_id")
	stringFilter(c, &filter, "supplier_id")
	stringFilter(c, &filter, "status")
	if err := timeFilter(c, &filter, "date_from"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := timeFilter(c, &filter, "date_to"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, filter.Page, filter.PageSize, len(receipts))
}
