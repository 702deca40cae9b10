// Package inventory exposes read-side views over stock: variant listings,
// low-stock reports, item drill-downs with provenance batches, and the
// cached barcode lookup the POS scanner hits on every beep.
package inventory

import (
	"context"
	"fmt"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
	"github.com/sayanm085/shopnex-api/pkg/logger"
)

// LookupCache caches barcode lookups. A miss returns (nil, nil); cache errors
// must never fail the lookup itself.
type LookupCache interface {
	Get(ctx context.Context, barcode string) (*dto.BarcodeLookupResponse, error)
	Set(ctx context.Context, barcode string, res *dto.BarcodeLookupResponse) error
}

// UseCase is the read side of the stock model.
type UseCase struct {
	itemRepo    repository.ItemRepository
	variantRepo repository.VariantRepository
	batchRepo   repository.BatchRepository
	cache       LookupCache
	log         *logger.Logger
}

// NewUseCase builds the inventory query usecase. cache may be nil.
func NewUseCase(itemRepo repository.ItemRepository, variantRepo repository.VariantRepository, batchRepo repository.BatchRepository, cache LookupCache, log *logger.Logger) *UseCase {
	return &UseCase{itemRepo: itemRepo, variantRepo: variantRepo, batchRepo: batchRepo, cache: cache, log: log}
}

// LookupBarcode resolves a scanned barcode to its variant and item data,
// serving from the cache when possible.
func (uc *UseCase) LookupBarcode(ctx context.Context, barcode string) (*dto.BarcodeLookupResponse, error) {
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", domain.ErrValidation)
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, barcode)
		if err != nil {
			uc.log.Warn().Err(err).Str("barcode", barcode).Msg("barcode cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	variant, err := uc.variantRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("%w: no stock variant with barcode %s", domain.ErrNotFound, barcode)
	}
	item, err := uc.itemRepo.GetByID(ctx, variant.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s behind barcode %s", domain.ErrNotFound, variant.ItemID, barcode)
	}

	res := &dto.BarcodeLookupResponse{
		VariantID:       variant.ID,
		ItemID:          item.ID,
		Name:            item.Name,
		Barcode:         variant.Barcode,
		Price:           variant.CurrentSalePrice,
		Quantity:        variant.CurrentQuantity,
		Status:          variant.Status,
		GSTPercentage:   item.GSTPercentage,
		DiscountPercent: item.DiscountPercent,
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, barcode, res); err != nil {
			uc.log.Warn().Err(err).Str("barcode", barcode).Msg("barcode cache write failed")
		}
	}
	return res, nil
}

// ItemInventory returns every variant of an item with its active batches.
func (uc *UseCase) ItemInventory(ctx context.Context, itemID string) ([]dto.VariantInventoryResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}

	variants, err := uc.variantRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantInventoryResponse, 0, len(variants))
	for _, v := range variants {
		batches, err := uc.batchRepo.ListActiveByVariant(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		entry := dto.VariantInventoryResponse{Variant: toVariantResponse(v, item.Name)}
		for _, b := range batches {
			entry.ActiveBatches = append(entry.ActiveBatches, toBatchResponse(b))
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListVariants pages through all stock variants.
func (uc *UseCase) ListVariants(ctx context.Context, page dto.PageRequest) ([]dto.VariantResponse, int, error) {
	page.DefaultPage()
	variants, total, err := uc.variantRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, toVariantResponse(v, uc.itemName(ctx, v.ItemID)))
	}
	return out, total, nil
}

// ListLowStock returns variants at or below their reorder level.
func (uc *UseCase) ListLowStock(ctx context.Context, limit int) ([]dto.VariantResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	variants, err := uc.variantRepo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, toVariantResponse(v, uc.itemName(ctx, v.ItemID)))
	}
	return out, nil
}

// itemName is display-only enrichment; a lookup failure degrades to an empty
// name rather than failing the listing.
func (uc *UseCase) itemName(ctx context.Context, itemID string) string {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil || item == nil {
		return ""
	}
	return item.Name
}

func toVariantResponse(v *entity.StockVariant, itemName string) dto.VariantResponse {
	return dto.VariantResponse{
		ID:                v.ID,
		ItemID:            v.ItemID,
		ItemName:          itemName,
		Barcode:           v.Barcode,
		CurrentQuantity:   v.CurrentQuantity,
		CurrentCostPrice:  v.CurrentCostPrice,
		CurrentSalePrice:  v.CurrentSalePrice,
		AverageCostPrice:  v.AverageCostPrice,
		MinimumStockLevel: v.MinimumStockLevel,
		Status:            v.Status,
		UpdatedAt:         v.UpdatedAt,
	}
}

func toBatchResponse(b *entity.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:                b.ID,
		BatchNumber:       b.BatchNumber,
		Barcode:           b.Barcode,
		OriginalQuantity:  b.OriginalQuantity,
		RemainingQuantity: b.RemainingQuantity,
		CostPrice:         b.CostPrice,
		SalePrice:         b.SalePrice,
		PurchaseDate:      b.PurchaseDate,
		PurchaseReference: b.PurchaseReference,
		ExpiryDate:        b.ExpiryDate,
		IsActive:          b.IsActive,
	}
}
