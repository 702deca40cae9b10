package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch is one immutable purchase event. It records the quantity and prices of a
// single purchase line and forms the append-only provenance trail behind a
// variant's quantity and average cost. Only RemainingQuantity and IsActive
// change after creation, via sale-side depletion.
type Batch struct {
	ID                string
	ItemID            string
	StockVariantID    string
	Barcode           string
	OriginalQuantity  int64
	RemainingQuantity int64
	CostPrice         decimal.Decimal
	SalePrice         decimal.Decimal
	PurchaseDate      time.Time
	PurchaseReference string // PO number
	BatchNumber       string // globally unique
	ExpiryDate        *time.Time
	IsActive          bool
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
