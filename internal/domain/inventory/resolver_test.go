package inventory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/inventory"
)

var resolverNow = time.Date(2025, 6, 28, 11, 49, 32, 0, time.UTC)

func riceItem() *entity.Item {
	return &entity.Item{ID: "item-rice", Name: "Rice-5kg", Barcode: "RICE5"}
}

func variant(barcode string, qty int64, cost, sale int64) *entity.StockVariant {
	return &entity.StockVariant{
		ID:               "var-" + barcode,
		ItemID:           "item-rice",
		Barcode:          barcode,
		CurrentQuantity:  qty,
		CurrentCostPrice: decimal.NewFromInt(cost),
		CurrentSalePrice: decimal.NewFromInt(sale),
		AverageCostPrice: decimal.NewFromInt(cost),
	}
}

func TestResolveVariant_FirstPurchaseUsesPrimaryBarcode(t *testing.T) {
	res := inventory.ResolveVariant(riceItem(), nil, decimal.NewFromInt(100), decimal.NewFromInt(120), resolverNow)

	require.True(t, res.Created)
	assert.Equal(t, "RICE5", res.Variant.Barcode)
	assert.True(t, res.Variant.AverageCostPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.Variant.CurrentSalePrice.Equal(decimal.NewFromInt(120)))
}

func TestResolveVariant_DepletedPrimaryIsRecycled(t *testing.T) {
	primary := variant("RICE5", 0, 100, 120)

	res := inventory.ResolveVariant(riceItem(), []*entity.StockVariant{primary},
		decimal.NewFromInt(110), decimal.NewFromInt(130), resolverNow)

	require.False(t, res.Created)
	assert.True(t, res.Recycled)
	assert.Same(t, primary, res.Variant)
	// Old price history is discarded, not blended.
	assert.True(t, primary.CurrentCostPrice.Equal(decimal.NewFromInt(110)))
	assert.True(t, primary.AverageCostPrice.Equal(decimal.NewFromInt(110)))
	assert.True(t, primary.CurrentSalePrice.Equal(decimal.NewFromInt(130)))
}

func TestResolveVariant_ExactPriceMatchMerges(t *testing.T) {
	primary := variant("RICE5", 50, 100, 120)
	child := variant("RICE5-000123", 20, 110, 130)

	res := inventory.ResolveVariant(riceItem(), []*entity.StockVariant{primary, child},
		decimal.NewFromInt(110), decimal.NewFromInt(130), resolverNow)

	require.False(t, res.Created)
	assert.Same(t, child, res.Variant)
}

func TestResolveVariant_DepletedPrimaryNotRecycledWhenAnotherVariantMatches(t *testing.T) {
	primary := variant("RICE5", 0, 100, 120)
	child := variant("RICE5-000123", 20, 110, 130)

	res := inventory.ResolveVariant(riceItem(), []*entity.StockVariant{primary, child},
		decimal.NewFromInt(110), decimal.NewFromInt(130), resolverNow)

	require.False(t, res.Created)
	assert.False(t, res.Recycled)
	assert.Same(t, child, res.Variant)
	// The depleted primary keeps its history for a later recycle.
	assert.True(t, primary.CurrentCostPrice.Equal(decimal.NewFromInt(100)))
}

func TestResolveVariant_NewPriceWhileStockedMintsChildBarcode(t *testing.T) {
	primary := variant("RICE5", 50, 100, 120)

	res := inventory.ResolveVariant(riceItem(), []*entity.StockVariant{primary},
		decimal.NewFromInt(120), decimal.NewFromInt(140), resolverNow)

	require.True(t, res.Created)
	assert.NotEqual(t, "RICE5", res.Variant.Barcode)
	assert.Regexp(t, `^RICE5-\d{6}$`, res.Variant.Barcode)
	// The primary variant is never touched.
	assert.True(t, primary.CurrentCostPrice.Equal(decimal.NewFromInt(100)))
	assert.EqualValues(t, 50, primary.CurrentQuantity)
}

func TestResolveVariant_ChildBarcodeSkipsTakenSuffix(t *testing.T) {
	primary := variant("RICE5", 50, 100, 120)
	// Occupy the suffix this clock instant would mint.
	suffix := resolverNow.UnixMilli() % 1_000_000
	taken := variant(fmt.Sprintf("RICE5-%06d", suffix), 10, 105, 125)

	res := inventory.ResolveVariant(riceItem(), []*entity.StockVariant{primary, taken},
		decimal.NewFromInt(120), decimal.NewFromInt(140), resolverNow)

	require.True(t, res.Created)
	assert.NotEqual(t, taken.Barcode, res.Variant.Barcode)
}

func TestResolveVariant_StockedPrimaryMatchingPairMerges(t *testing.T) {
	primary := variant("RICE5", 50, 100, 120)

	res := inventory.ResolveVariant(riceItem(), []*entity.StockVariant{primary},
		decimal.NewFromInt(100), decimal.NewFromInt(120), resolverNow)

	require.False(t, res.Created)
	assert.Same(t, primary, res.Variant)
}

func TestStockVariant_DeriveStatus(t *testing.T) {
	v := &entity.StockVariant{CurrentQuantity: 0, MinimumStockLevel: 10}
	v.DeriveStatus()
	assert.Equal(t, entity.StockStatusOutOfStock, v.Status)

	v.CurrentQuantity = 5
	v.DeriveStatus()
	assert.Equal(t, entity.StockStatusLow, v.Status)

	v.CurrentQuantity = 10
	v.DeriveStatus()
	assert.Equal(t, entity.StockStatusAvailable, v.Status)
}
