package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest is one line of a dealer purchase. Either ItemID references
// an existing catalog item, or Name/Barcode/Weight* carry enough to create one.
type PurchaseLineRequest struct {
	ItemID            string          `json:"item_id,omitempty"`
	Name              string          `json:"name,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	WeightValue       decimal.Decimal `json:"weight_value,omitempty"`
	WeightUnit        string          `json:"weight_unit,omitempty"`
	GSTPercentage     decimal.Decimal `json:"gst_percentage"`
	Quantity          int64           `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	MinimumStockLevel int64           `json:"minimum_stock_level,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
}

// PurchaseFromDealerRequest body for POST /api/purchases.
type PurchaseFromDealerRequest struct {
	DealerID             string                `json:"dealer_id"`
	PONumber             string                `json:"po_number,omitempty"`
	ExpectedDeliveryDate time.Time             `json:"expected_delivery_date"`
	PaymentTerms         string                `json:"payment_terms,omitempty"`
	Notes                string                `json:"notes,omitempty"`
	Items                []PurchaseLineRequest `json:"items"`
}

// PurchaseOrderItemResponse is one processed purchase line.
type PurchaseOrderItemResponse struct {
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Barcode       string          `json:"barcode"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse is the purchase-order summary returned on settlement
// and by the PO query endpoints.
type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	PONumber             string                      `json:"po_number"`
	DealerID             string                      `json:"dealer_id"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate time.Time                   `json:"expected_delivery_date"`
	Status               string                      `json:"status"`
	PaymentTerms         string                      `json:"payment_terms"`
	Items                []PurchaseOrderItemResponse `json:"items"`
	Subtotal             decimal.Decimal             `json:"subtotal"`
	TaxAmount            decimal.Decimal             `json:"tax_amount"`
	DiscountAmount       decimal.Decimal             `json:"discount_amount"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
}
