package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Weight units accepted for catalog items.
const (
	UnitKg    = "kg"
	UnitGram  = "gm"
	UnitLitre = "litre"
	UnitMl    = "ml"
	UnitPcs   = "pcs"
)

// Item is a catalog entry. Identity is immutable; descriptive fields are mutable
// via the catalog API. The inventory core references items, never mutates them.
type Item struct {
	ID              string
	Name            string
	Barcode         string // primary barcode, globally unique when set
	WeightValue     decimal.Decimal
	WeightUnit      string
	GSTPercentage   decimal.Decimal
	DiscountPercent decimal.Decimal // optional per-line discount, applied on caller opt-in
	ImageURL        string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidWeightUnit reports whether u is one of the accepted units.
func ValidWeightUnit(u string) bool {
	switch u {
	case UnitKg, UnitGram, UnitLitre, UnitMl, UnitPcs:
		return true
	}
	return false
}
