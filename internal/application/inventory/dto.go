package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Goods receipt DTOs
// =============================================================================

// ReceiptLineRequest is one line on a goods receipt save request
type ReceiptLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// SaveReceiptRequest creates a goods receipt or replaces the lines of an
// existing one. Status changes go through the dedicated transition endpoint.
type SaveReceiptRequest struct {
	BranchID              uuid.UUID            `json:"branch_id" binding:"required"`
	SupplierID            uuid.UUID            `json:"supplier_id" binding:"required"`
	SupplierInvoiceNumber string               `json:"supplier_invoice_number" binding:"max=100"`
	ReceivedDate          time.Time            `json:"received_date"`
	Notes                 string               `json:"notes"`
	Lines                 []ReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
	ReceivedBy            *uuid.UUID           `json:"-"` // Set from auth context
}

// SetReceiptStatusRequest moves a receipt to a new status
type SetReceiptStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING COMPLETED CANCELLED"`
}

// ReceiptLineResponse is one line in a receipt response
type ReceiptLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineValue   decimal.Decimal `json:"line_value"`
}

// ReceiptResponse represents a goods receipt in API responses
type ReceiptResponse struct {
	ID                    uuid.UUID             `json:"id"`
	Number                string                `json:"number"`
	BranchID              uuid.UUID             `json:"branch_id"`
	SupplierID            uuid.UUID             `json:"supplier_id"`
	SupplierInvoiceNumber string                `json:"supplier_invoice_number"`
	ReceivedDate          time.Time             `json:"received_date"`
	Status                string                `json:"status"`
	Notes                 string                `json:"notes"`
	TotalValue            decimal.Decimal       `json:"total_value"`
	Lines                 []ReceiptLineResponse `json:"lines"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// ToReceiptResponse converts a goods receipt to its API representation
func ToReceiptResponse(receipt *inventory.GoodsReceipt) ReceiptResponse {
	lines := make([]ReceiptLineResponse, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		lines = append(lines, ReceiptLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.QuantityReceived,
			UnitCost:    line.UnitCost,
			LineValue:   line.LineValue(),
		})
	}
	return ReceiptResponse{
		ID:                    receipt.ID,
		Number:                receipt.Number,
		BranchID:              receipt.BranchID,
		SupplierID:            receipt.SupplierID,
		SupplierInvoiceNumber: receipt.SupplierInvoiceNumber,
		ReceivedDate:          receipt.ReceivedDate,
		Status:                receipt.Status.String(),
		Notes:                 receipt.Notes,
		TotalValue:            receipt.TotalValue(),
		Lines:                 lines,
		CreatedAt:             receipt.CreatedAt,
		UpdatedAt:             receipt.UpdatedAt,
	}
}

// =============================================================================
// Stock DTOs
// =============================================================================

// StockLevelResponse represents one branch-product stock level
type StockLevelResponse struct {
	ID        uuid.UUID       `json:"id"`
	BranchID  uuid.UUID       `json:"branch_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToStockLevelResponse converts a stock level to its API representation
func ToStockLevelResponse(level *inventory.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:        level.ID,
		BranchID:  level.BranchID,
		ProductID: level.ProductID,
		Quantity:  level.Quantity,
		UpdatedAt: level.UpdatedAt,
	}
}
