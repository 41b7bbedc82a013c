package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
)

// StockHandler handles stock level query endpoints. Stock is never written
// through this handler: quantities only move through receipt and sale
// status transitions.
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// BranchStock handles GET /inventory/stock/branches/:branch_id
func (h *StockHandler) BranchStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	stringFilter(c, &filter, "product_id")
	if err := boolFilter(c, &filter, "has_stock"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := boolFilter(c, &filter, "negative"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	levels, err := h.stockService.BranchStock(c.Request.Context(), tenantID, branchID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, levels, filter.Page, filter.PageSize, len(levels))
}

// CurrentStock handles GET /inventory/stock/branches/:branch_id/products/:product_id
func (h *StockHandler) CurrentStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	quantity, err := h.stockService.CurrentStock(c.Request.Context(), tenantID, branchID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"branch_id":  branchID,
		"product_id": productID,
		"quantity":   quantity,
	})
}

// ProductTotal handles GET /inventory/stock/products/:product_id/total
func (h *StockHandler) ProductTotal(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	total, err := h.stockService.ProductTotal(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"product_id": productID,
		"quantity":   total,
	})
}
