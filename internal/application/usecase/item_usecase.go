package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

const defaultItemImage = "/images/default-item.png"

// GST slabs top out at 28 percent.
var maxGSTPercentage = decimal.NewFromInt(28)

// ItemUseCase is catalog CRUD. It never touches stock: variants and batches
// belong to the settlement engines.
type ItemUseCase struct {
	itemRepo    repository.ItemRepository
	variantRepo repository.VariantRepository
}

// NewItemUseCase builds the catalog usecase.
func NewItemUseCase(itemRepo repository.ItemRepository, variantRepo repository.VariantRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, variantRepo: variantRepo}
}

// CreateItem registers a catalog entry.
func (uc *ItemUseCase) CreateItem(ctx context.Context, actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := validateItemFields(in.Name, in.WeightValue, in.WeightUnit, in.GSTPercentage, in.DiscountPercent); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Barcode:         in.Barcode,
		WeightValue:     in.WeightValue,
		WeightUnit:      in.WeightUnit,
		GSTPercentage:   in.GSTPercentage,
		DiscountPercent: in.DiscountPercent,
		ImageURL:        in.ImageURL,
		CreatedBy:       actorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if item.ImageURL == "" {
		item.ImageURL = defaultItemImage
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem returns one catalog entry.
func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return toItemResponse(item), nil
}

// ListItems pages the catalog, optionally filtered by a name substring.
func (uc *ItemUseCase) ListItems(ctx context.Context, nameFilter string, page dto.PageRequest) ([]*dto.ItemResponse, int, error) {
	page.DefaultPage()
	items, total, err := uc.itemRepo.List(ctx, nameFilter, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, total, nil
}

// UpdateItem applies the mutable descriptive fields. The primary barcode can
// only be set while unset; rebinding it would orphan the variants behind it.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}

	if in.Barcode != "" && in.Barcode != item.Barcode {
		if item.Barcode != "" {
			return nil, fmt.Errorf("%w: the primary barcode cannot be changed once set", domain.ErrValidation)
		}
		item.Barcode = in.Barcode
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.WeightValue.GreaterThan(decimal.Zero) {
		item.WeightValue = in.WeightValue
	}
	if in.WeightUnit != "" {
		if !entity.ValidWeightUnit(in.WeightUnit) {
			return nil, fmt.Errorf("%w: unknown weight unit %q", domain.ErrValidation, in.WeightUnit)
		}
		item.WeightUnit = in.WeightUnit
	}
	if in.GSTPercentage.GreaterThan(decimal.Zero) {
		item.GSTPercentage = in.GSTPercentage
	}
	item.DiscountPercent = in.DiscountPercent
	if in.ImageURL != "" {
		item.ImageURL = in.ImageURL
	}
	if err := validateItemFields(item.Name, item.WeightValue, item.WeightUnit, item.GSTPercentage, item.DiscountPercent); err != nil {
		return nil, err
	}

	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// DeleteItem removes a catalog entry that has no stock behind it. Items with
// live variants stay: their sale history and ledger reference them.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	variants, err := uc.variantRepo.ListByItem(ctx, id)
	if err != nil {
		return err
	}
	for _, v := range variants {
		if v.CurrentQuantity > 0 {
			return fmt.Errorf("%w: item %s still has stock on barcode %s", domain.ErrInvalidState, item.Name, v.Barcode)
		}
	}
	return uc.itemRepo.Delete(ctx, id)
}

func validateItemFields(name string, weightValue decimal.Decimal, weightUnit string, gst, discount decimal.Decimal) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if weightValue.LessThanOrEqual(decimal.Zero) || !entity.ValidWeightUnit(weightUnit) {
		return fmt.Errorf("%w: weight value and unit are required", domain.ErrValidation)
	}
	if gst.IsNegative() || gst.GreaterThan(maxGSTPercentage) {
		return fmt.Errorf("%w: gst percentage must be between 0 and %s", domain.ErrValidation, maxGSTPercentage)
	}
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: discount percent must be between 0 and 100", domain.ErrValidation)
	}
	return nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Barcode:         item.Barcode,
		WeightValue:     item.WeightValue,
		WeightUnit:      item.WeightUnit,
		GSTPercentage:   item.GSTPercentage,
		DiscountPercent: item.DiscountPercent,
		ImageURL:        item.ImageURL,
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
	}
}
