package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleLineRequest is one line on a sale save request. UnitPrice overrides
// the resolved list price when set; omitting it resolves the price from the
// branch's price list.
type SaleLineRequest struct {
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	ItemDiscount decimal.Decimal  `json:"item_discount"`
}

// SaveSaleRequest creates a sale or replaces the lines of an existing one
type SaveSaleRequest struct {
	BranchID       uuid.UUID         `json:"branch_id" binding:"required"`
	CustomerID     *uuid.UUID        `json:"customer_id"`
	PriceListID    *uuid.UUID        `json:"price_list_id"`
	SaleDate       time.Time         `json:"sale_date"`
	PaymentType    string            `json:"payment_type" binding:"required,oneof=CASH CARD MOBILE BANK ACCOUNT VOUCHER OTHER"`
	AmountPaid     decimal.Decimal   `json:"amount_paid"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	Notes          string            `json:"notes"`
	Lines          []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	ProcessedBy    *uuid.UUID        `json:"-"` // Set from auth context
}

// SetSaleStatusRequest moves a sale to a new status
type SetSaleStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING COMPLETED CANCELLED REFUNDED"`
}

// SaleLineResponse is one line in a sale response
type SaleLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	Number         string             `json:"number"`
	BranchID       uuid.UUID          `json:"branch_id"`
	CustomerID     *uuid.UUID         `json:"customer_id"`
	SaleDate       time.Time          `json:"sale_date"`
	Status         string             `json:"status"`
	PaymentType    string             `json:"payment_type"`
	SubTotal       decimal.Decimal    `json:"sub_total"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	ChangeDue      decimal.Decimal    `json:"change_due"`
	StockDeducted  bool               `json:"stock_deducted"`
	Notes          string             `json:"notes"`
	Lines          []SaleLineResponse `json:"lines"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ToSaleResponse converts a sale to its API representation
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		lines = append(lines, SaleLineResponse{
			ID:           line.ID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			ItemDiscount: line.ItemDiscount,
			LineTotal:    line.LineTotal,
		})
	}
	return SaleResponse{
		ID:             sale.ID,
		Number:         sale.Number,
		BranchID:       sale.BranchID,
		CustomerID:     sale.CustomerID,
		SaleDate:       sale.SaleDate,
		Status:         sale.Status.String(),
		PaymentType:    string(sale.PaymentType),
		SubTotal:       sale.SubTotal,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		GrandTotal:     sale.GrandTotal,
		AmountPaid:     sale.AmountPaid,
		ChangeDue:      sale.ChangeDue,
		StockDeducted:  sale.StockDeducted,
		Notes:          sale.Notes,
		Lines:          lines,
		CreatedAt:      sale.CreatedAt,
		UpdatedAt:      sale.UpdatedAt,
	}
}
