package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale statuses. A sale is created in_progress by the order builder and moves to
// completed (terminal) only through settlement.
const (
	SaleStatusInProgress = "in_progress"
	SaleStatusCompleted  = "completed"
	SaleStatusCancelled  = "cancelled"
)

// Payment methods accepted at settlement.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
)

// Sale is one checkout transaction.
type Sale struct {
	ID                 string
	Date               time.Time
	CustomerID         string // empty for walk-in sales
	Items              []SaleItem
	Subtotal           decimal.Decimal
	TaxAmount          decimal.Decimal
	DiscountAmount     decimal.Decimal
	AdditionalDiscount decimal.Decimal
	PointsDiscount     decimal.Decimal
	LoyaltyPointsUsed  int64
	Total              decimal.Decimal
	Status             string
	PaymentMethod      string
	PaymentDetails     PaymentDetails
	CounterNumber      int
	InvoiceNumber      string
	CreatedBy          string
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SaleItem is one cart line resolved against a stock variant. Barcode is the
// exact variant the line was priced from; LegacyItemID carries the raw item
// reference older POS clients send instead of ItemID.
type SaleItem struct {
	ID              string
	ItemID          string
	LegacyItemID    string
	Name            string
	Barcode         string
	Quantity        int64
	Price           decimal.Decimal
	GSTPercentage   decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalPrice      decimal.Decimal
}

// PaymentDetails records the method-specific fields captured at settlement.
type PaymentDetails struct {
	AmountReceived   decimal.Decimal `json:"amount_received,omitempty"`
	ChangeDue        decimal.Decimal `json:"change_due,omitempty"`
	CardDetails      string          `json:"card_details,omitempty"`
	UPITransactionID string          `json:"upi_transaction_id,omitempty"`
}
