package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantResponse is one stock variant with its item denormalized for display.
type VariantResponse struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name,omitempty"`
	Barcode           string          `json:"barcode"`
	CurrentQuantity   int64           `json:"current_quantity"`
	CurrentCostPrice  decimal.Decimal `json:"current_cost_price"`
	CurrentSalePrice  decimal.Decimal `json:"current_sale_price"`
	AverageCostPrice  decimal.Decimal `json:"average_cost_price"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	Status            string          `json:"status"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BatchResponse is one ledger batch.
type BatchResponse struct {
	ID                string          `json:"id"`
	BatchNumber       string          `json:"batch_number"`
	Barcode           string          `json:"barcode"`
	OriginalQuantity  int64           `json:"original_quantity"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	PurchaseReference string          `json:"purchase_reference,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	IsActive          bool            `json:"is_active"`
}

// VariantInventoryResponse pairs a variant with its active provenance batches.
type VariantInventoryResponse struct {
	Variant       VariantResponse `json:"variant"`
	ActiveBatches []BatchResponse `json:"active_batches"`
}

// BarcodeLookupResponse is the POS scan result for one barcode.
type BarcodeLookupResponse struct {
	VariantID       string          `json:"variant_id"`
	ItemID          string          `json:"item_id"`
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int64           `json:"quantity"`
	Status          string          `json:"status"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}
