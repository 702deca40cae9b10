package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order statuses.
const (
	POStatusPending   = "pending"
	POStatusDelivered = "delivered"
	POStatusPartial   = "partial"
	POStatusCanceled  = "canceled"
)

// PurchaseOrder is one dealer transaction, created atomically with its batches
// and stock updates.
type PurchaseOrder struct {
	ID                   string
	PONumber             string // unique
	DealerID             string
	OrderDate            time.Time
	ExpectedDeliveryDate time.Time
	Status               string
	PaymentTerms         string
	Items                []PurchaseOrderItem
	Subtotal             decimal.Decimal
	TaxAmount            decimal.Decimal
	DiscountAmount       decimal.Decimal
	TotalAmount          decimal.Decimal
	Notes                string
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PurchaseOrderItem is one processed line of a purchase order.
type PurchaseOrderItem struct {
	ID            string
	ItemID        string
	ItemName      string
	Barcode       string // barcode of the variant that absorbed the quantity
	Quantity      int64
	UnitPrice     decimal.Decimal
	GSTPercentage decimal.Decimal
	TotalPrice    decimal.Decimal
}
