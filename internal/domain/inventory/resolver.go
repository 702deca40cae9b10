package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// Resolution is the outcome of resolving a purchase line to a stock variant.
type Resolution struct {
	// Variant receives the incoming quantity. When Created is true it is a new
	// variant not yet persisted; otherwise it is one of the variants passed in,
	// possibly with its prices rewritten (recycled primary).
	Variant *entity.StockVariant
	Created bool
	// Recycled marks case 2: the depleted primary variant was reused and its
	// price history discarded.
	Recycled bool
}

// ResolveVariant decides which stock variant absorbs a purchased quantity, in
// this order:
//
//  1. no variant under the item's primary barcode yet -> create it there
//  2. primary variant is depleted and no other variant matches the (cost, sale)
//     pair -> recycle the primary, overwriting its prices
//  3. some variant matches the (cost, sale) pair exactly -> merge into it
//  4. primary still holds stock at a different price -> mint a child barcode
//     and create a new variant
//  5. otherwise merge into the primary
//
// A single item can this way be sold at several live price points at once, and
// depleted variants are recycled instead of orphaned. variants must be every
// live variant of the item, including rows written earlier in the same
// settlement. The returned variant's quantity and average cost are untouched;
// the caller applies the merge.
func ResolveVariant(item *entity.Item, variants []*entity.StockVariant, unitCost, salePrice decimal.Decimal, now time.Time) Resolution {
	var primary *entity.StockVariant
	for _, v := range variants {
		if v.Barcode == item.Barcode {
			primary = v
			break
		}
	}

	// Case 1: first stock ever for this item.
	if primary == nil {
		return Resolution{Variant: newVariant(item, item.Barcode, unitCost, salePrice, now), Created: true}
	}

	matched := matchByPrice(variants, unitCost, salePrice)

	// Case 2: primary sold out and nothing else carries this price pair.
	if primary.CurrentQuantity <= 0 && matched == nil {
		primary.CurrentCostPrice = unitCost
		primary.CurrentSalePrice = salePrice
		primary.AverageCostPrice = unitCost
		return Resolution{Variant: primary, Recycled: true}
	}

	// Case 3: exact price match, merge.
	if matched != nil {
		return Resolution{Variant: matched}
	}

	// Case 4: primary holds stock at another price; a new tier goes live beside it.
	if primary.CurrentQuantity > 0 {
		return Resolution{Variant: newVariant(item, childBarcode(item.Barcode, variants, now), unitCost, salePrice, now), Created: true}
	}

	// Case 5: fall back to the primary.
	return Resolution{Variant: primary}
}

func matchByPrice(variants []*entity.StockVariant, unitCost, salePrice decimal.Decimal) *entity.StockVariant {
	for _, v := range variants {
		if v.CurrentCostPrice.Equal(unitCost) && v.CurrentSalePrice.Equal(salePrice) {
			return v
		}
	}
	return nil
}

func newVariant(item *entity.Item, barcode string, unitCost, salePrice decimal.Decimal, now time.Time) *entity.StockVariant {
	return &entity.StockVariant{
		ItemID:           item.ID,
		Barcode:          barcode,
		CurrentCostPrice: unitCost,
		CurrentSalePrice: salePrice,
		AverageCostPrice: unitCost,
		Status:           entity.StockStatusOutOfStock,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// childBarcode mints "<primary>-<last 6 digits of the unix-milli clock>" and
// bumps the suffix until it collides with none of the known variants, so two
// lines of one settlement cannot mint the same barcode.
func childBarcode(primaryBarcode string, variants []*entity.StockVariant, now time.Time) string {
	suffix := now.UnixMilli() % 1_000_000
	for {
		candidate := fmt.Sprintf("%s-%06d", primaryBarcode, suffix)
		if !barcodeTaken(variants, candidate) {
			return candidate
		}
		suffix = (suffix + 1) % 1_000_000
	}
}

func barcodeTaken(variants []*entity.StockVariant, barcode string) bool {
	for _, v := range variants {
		if v.Barcode == barcode {
			return true
		}
	}
	return false
}
