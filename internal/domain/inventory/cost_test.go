package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sayanm085/shopnex-api/internal/domain/inventory"
)

func TestWeightedAverageCost_BlendsByQuantity(t *testing.T) {
	// 50 units @ 100 merged with 30 units @ 110 -> (50*100 + 30*110) / 80 = 103.75
	got := inventory.WeightedAverageCost(50, decimal.NewFromInt(100), 30, decimal.NewFromInt(110))
	assert.True(t, got.Equal(decimal.RequireFromString("103.75")), "got %s", got)
}

func TestWeightedAverageCost_EmptyVariantTakesIncomingCost(t *testing.T) {
	got := inventory.WeightedAverageCost(0, decimal.NewFromInt(100), 30, decimal.NewFromInt(110))
	assert.True(t, got.Equal(decimal.NewFromInt(110)))

	// A stale (negative after a bug elsewhere) quantity must never blend either.
	got = inventory.WeightedAverageCost(-5, decimal.NewFromInt(100), 30, decimal.NewFromInt(110))
	assert.True(t, got.Equal(decimal.NewFromInt(110)))
}

func TestWeightedAverageCost_MergeOrderCommutes(t *testing.T) {
	// Merging (20 @ 120) then (30 @ 90) must equal merging (30 @ 90) then (20 @ 120).
	base := decimal.NewFromInt(100)

	a1 := inventory.WeightedAverageCost(50, base, 20, decimal.NewFromInt(120))
	a2 := inventory.WeightedAverageCost(70, a1, 30, decimal.NewFromInt(90))

	b1 := inventory.WeightedAverageCost(50, base, 30, decimal.NewFromInt(90))
	b2 := inventory.WeightedAverageCost(80, b1, 20, decimal.NewFromInt(120))

	assert.True(t, a2.Sub(b2).Abs().LessThan(decimal.RequireFromString("0.0000001")),
		"order a: %s, order b: %s", a2, b2)
}

func TestWeightedAverageCost_ExactMean(t *testing.T) {
	// Quantity-weighted mean across three merges into an initially empty variant.
	avg := inventory.WeightedAverageCost(0, decimal.Zero, 10, decimal.NewFromInt(10))
	avg = inventory.WeightedAverageCost(10, avg, 10, decimal.NewFromInt(20))
	avg = inventory.WeightedAverageCost(20, avg, 20, decimal.NewFromInt(40))
	// (10*10 + 10*20 + 20*40) / 40 = 1100/40 = 27.5
	assert.True(t, avg.Equal(decimal.RequireFromString("27.5")), "got %s", avg)
}
