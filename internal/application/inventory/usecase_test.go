package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/inventory"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/infrastructure/memory"
	"github.com/sayanm085/shopnex-api/pkg/logger"
)

// mapCache is an in-memory LookupCache with optional forced errors.
type mapCache struct {
	entries map[string]*dto.BarcodeLookupResponse
	getErr  error
	setErr  error
	gets    int
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]*dto.BarcodeLookupResponse{}}
}

func (c *mapCache) Get(_ context.Context, barcode string) (*dto.BarcodeLookupResponse, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[barcode], nil
}

func (c *mapCache) Set(_ context.Context, barcode string, res *dto.BarcodeLookupResponse) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[barcode] = res
	return nil
}

func newInventoryFixture(cache inventory.LookupCache) (*memory.Store, *inventory.UseCase) {
	store := memory.NewStore()
	uc := inventory.NewUseCase(store.Items(), store.Variants(), store.Batches(), cache, logger.Nop())
	return store, uc
}

func seedStock(t *testing.T, store *memory.Store, name, barcode string, qty int64, salePrice float64) (*entity.Item, *entity.StockVariant) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	item := &entity.Item{
		ID:            "item-" + barcode,
		Name:          name,
		Barcode:       barcode,
		WeightValue:   decimal.NewFromInt(1),
		WeightUnit:    entity.UnitKg,
		GSTPercentage: decimal.NewFromInt(5),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Items().Create(ctx, item))

	variant := &entity.StockVariant{
		ID:                "var-" + barcode,
		ItemID:            item.ID,
		Barcode:           barcode,
		CurrentQuantity:   qty,
		CurrentCostPrice:  decimal.NewFromFloat(salePrice * 0.8),
		CurrentSalePrice:  decimal.NewFromFloat(salePrice),
		AverageCostPrice:  decimal.NewFromFloat(salePrice * 0.8),
		MinimumStockLevel: 10,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	variant.DeriveStatus()
	require.NoError(t, store.Variants().Create(ctx, variant))
	return item, variant
}

func TestLookupBarcode_ResolvesVariantAndItem(t *testing.T) {
	store, uc := newInventoryFixture(nil)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100)

	out, err := uc.LookupBarcode(context.Background(), "RICE5")
	require.NoError(t, err)

	assert.Equal(t, "var-RICE5", out.VariantID)
	assert.Equal(t, "item-RICE5", out.ItemID)
	assert.Equal(t, "Basmati Rice 5kg", out.Name)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(40), out.Quantity)
}

func TestLookupBarcode_EmptyBarcodeIsValidation(t *testing.T) {
	_, uc := newInventoryFixture(nil)

	_, err := uc.LookupBarcode(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLookupBarcode_UnknownBarcodeIsNotFound(t *testing.T) {
	_, uc := newInventoryFixture(nil)

	_, err := uc.LookupBarcode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupBarcode_SecondHitServedFromCache(t *testing.T) {
	cache := newMapCache()
	store, uc := newInventoryFixture(cache)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100)
	ctx := context.Background()

	first, err := uc.LookupBarcode(ctx, "RICE5")
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	second, err := uc.LookupBarcode(ctx, "RICE5")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "cache hit must not rewrite the entry")
	assert.Equal(t, 2, cache.gets)
}

func TestLookupBarcode_CacheFailuresDegradeToDatabase(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	store, uc := newInventoryFixture(cache)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100)

	out, err := uc.LookupBarcode(context.Background(), "RICE5")
	require.NoError(t, err, "cache errors must never fail the lookup")
	assert.Equal(t, "var-RICE5", out.VariantID)
}

func TestItemInventory_IncludesActiveBatchesOnly(t *testing.T) {
	store, uc := newInventoryFixture(nil)
	item, variant := seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Batches().Create(ctx, &entity.Batch{
		ID:                "batch-1",
		ItemID:            item.ID,
		StockVariantID:    variant.ID,
		BatchNumber:       "BASM-20260101-00001",
		Barcode:           variant.Barcode,
		OriginalQuantity:  40,
		RemainingQuantity: 40,
		CostPrice:         decimal.NewFromInt(80),
		SalePrice:         decimal.NewFromInt(100),
		PurchaseDate:      now.Add(-48 * time.Hour),
		IsActive:          true,
	}))
	require.NoError(t, store.Batches().Create(ctx, &entity.Batch{
		ID:                "batch-0",
		ItemID:            item.ID,
		StockVariantID:    variant.ID,
		BatchNumber:       "BASM-20251201-00001",
		Barcode:           variant.Barcode,
		OriginalQuantity:  30,
		RemainingQuantity: 0,
		CostPrice:         decimal.NewFromInt(78),
		SalePrice:         decimal.NewFromInt(100),
		PurchaseDate:      now.Add(-30 * 24 * time.Hour),
		IsActive:          false,
	}))

	out, err := uc.ItemInventory(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Basmati Rice 5kg", out[0].Variant.ItemName)
	require.Len(t, out[0].ActiveBatches, 1)
	assert.Equal(t, "BASM-20260101-00001", out[0].ActiveBatches[0].BatchNumber)
}

func TestItemInventory_UnknownItemIsNotFound(t *testing.T) {
	_, uc := newInventoryFixture(nil)

	_, err := uc.ItemInventory(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListVariants_EnrichesItemNames(t *testing.T) {
	store, uc := newInventoryFixture(nil)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100)
	seedStock(t, store, "Iodised Salt 1kg", "SALT1", 90, 20)

	out, total, err := uc.ListVariants(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, out, 2)

	names := []string{out[0].ItemName, out[1].ItemName}
	assert.Contains(t, names, "Basmati Rice 5kg")
	assert.Contains(t, names, "Iodised Salt 1kg")
}

func TestListLowStock_ReturnsOnlyVariantsAtOrBelowMinimum(t *testing.T) {
	store, uc := newInventoryFixture(nil)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100)
	seedStock(t, store, "Iodised Salt 1kg", "SALT1", 3, 20)

	out, err := uc.ListLowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "var-SALT1", out[0].ID)
	assert.Equal(t, entity.StockStatusLow, out[0].Status)
}
