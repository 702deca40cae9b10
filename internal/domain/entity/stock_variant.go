package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status values, derived from quantity and minimum stock level.
const (
	StockStatusAvailable  = "available"
	StockStatusLow        = "low"
	StockStatusOutOfStock = "out_of_stock"
)

// StockVariant is one priced, barcoded stock line for an item. An item may have
// several live variants at once (one per price tier); each is keyed by a
// globally unique barcode. Created and mutated only by the settlement engines.
type StockVariant struct {
	ID                string
	ItemID            string
	Barcode           string
	CurrentQuantity   int64
	CurrentCostPrice  decimal.Decimal
	CurrentSalePrice  decimal.Decimal
	AverageCostPrice  decimal.Decimal
	MinimumStockLevel int64
	Status            string
	LastUpdatedBy     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DeriveStatus recomputes Status from the current quantity.
func (v *StockVariant) DeriveStatus() {
	switch {
	case v.CurrentQuantity <= 0:
		v.Status = StockStatusOutOfStock
	case v.CurrentQuantity < v.MinimumStockLevel:
		v.Status = StockStatusLow
	default:
		v.Status = StockStatusAvailable
	}
}
