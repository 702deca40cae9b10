package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body for POST /api/items.
type CreateItemRequest struct {
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode,omitempty"`
	WeightValue     decimal.Decimal `json:"weight_value"`
	WeightUnit      string          `json:"weight_unit"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage"`
	DiscountPercent decimal.Decimal `json:"discount_percent,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
}

// UpdateItemRequest body for PUT /api/items/:id. Zero values leave fields
// unchanged except DiscountPercent, which is always applied so a discount can
// be cleared.
type UpdateItemRequest struct {
	Name            string          `json:"name,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	WeightValue     decimal.Decimal `json:"weight_value,omitempty"`
	WeightUnit      string          `json:"weight_unit,omitempty"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ImageURL        string          `json:"image_url"`
}

// ItemResponse is the catalog item representation.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode,omitempty"`
	WeightValue     decimal.Decimal `json:"weight_value"`
	WeightUnit      string          `json:"weight_unit"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ImageURL        string          `json:"image_url"`
	CreatedAt       string          `json:"created_at"`
}
