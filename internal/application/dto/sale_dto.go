package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest is one cart line. Barcode pins the exact stock variant; when
// only ItemID is given the item's primary-barcode variant is used.
type SaleLineRequest struct {
	ItemID        string `json:"item_id,omitempty"`
	Barcode       string `json:"barcode,omitempty"`
	Quantity      int64  `json:"quantity"`
	ApplyDiscount bool   `json:"apply_discount,omitempty"`
}

// CustomerInfoRequest identifies the loyalty customer, by ID or by phone with
// auto-create fallback.
type CustomerInfoRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// CreateSaleOrderRequest body for POST /api/sales/orders.
type CreateSaleOrderRequest struct {
	Items         []SaleLineRequest    `json:"items"`
	Customer      *CustomerInfoRequest `json:"customer,omitempty"`
	CounterNumber int                  `json:"counter_number,omitempty"`
}

// SettleSaleRequest body for POST /api/sales/:id/settle.
type SettleSaleRequest struct {
	PaymentMethod      string          `json:"payment_method"`
	AmountReceived     decimal.Decimal `json:"amount_received,omitempty"`
	CardDetails        string          `json:"card_details,omitempty"`
	UPITransactionID   string          `json:"upi_transaction_id,omitempty"`
	AdditionalDiscount decimal.Decimal `json:"additional_discount,omitempty"`
	LoyaltyPointsUsed  int64           `json:"loyalty_points_used,omitempty"`
}

// SaleItemResponse is one sale line.
type SaleItemResponse struct {
	ItemID          string          `json:"item_id"`
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode"`
	Quantity        int64           `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// SaleResponse is the sale representation returned by order build, settlement
// and queries.
type SaleResponse struct {
	ID                 string             `json:"id"`
	Date               time.Time          `json:"date"`
	CustomerID         string             `json:"customer_id,omitempty"`
	Items              []SaleItemResponse `json:"items"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	TaxAmount          decimal.Decimal    `json:"tax_amount"`
	DiscountAmount     decimal.Decimal    `json:"discount_amount"`
	AdditionalDiscount decimal.Decimal    `json:"additional_discount"`
	PointsDiscount     decimal.Decimal    `json:"points_discount"`
	LoyaltyPointsUsed  int64              `json:"loyalty_points_used"`
	Total              decimal.Decimal    `json:"total"`
	Status             string             `json:"status"`
	PaymentMethod      string             `json:"payment_method,omitempty"`
	ChangeDue          decimal.Decimal    `json:"change_due,omitempty"`
	CounterNumber      int                `json:"counter_number,omitempty"`
	InvoiceNumber      string             `json:"invoice_number,omitempty"`
	CompletedAt        *time.Time         `json:"completed_at,omitempty"`
}

// SettleSaleResponse pairs the completed sale with the points earned on it.
type SettleSaleResponse struct {
	Sale         SaleResponse `json:"sale"`
	PointsEarned int64        `json:"points_earned"`
}
