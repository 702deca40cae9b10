package purchasing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/inventory"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
	"github.com/sayanm085/shopnex-api/pkg/logger"
)

const (
	defaultMinimumStockLevel = 10
	defaultItemImage         = "/images/default-item.png"
)

// CacheInvalidator drops cached barcode lookups after stock changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, barcodes ...string)
}

// UseCase settles dealer purchase orders: per line it resolves the receiving
// stock variant, recomputes the weighted-average cost, appends a ledger batch,
// and finally persists the purchase order, all inside one transaction.
type UseCase struct {
	txRunner   TxRunner
	dealerRepo repository.DealerRepository
	orderRepo  repository.PurchaseOrderRepository
	cache      CacheInvalidator
	log        *logger.Logger
}

// NewUseCase builds the purchasing usecase.
func NewUseCase(txRunner TxRunner, dealerRepo repository.DealerRepository, orderRepo repository.PurchaseOrderRepository, cache CacheInvalidator, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, dealerRepo: dealerRepo, orderRepo: orderRepo, cache: cache, log: log}
}

// PurchaseFromDealer validates the request, processes every line strictly in
// input order inside one transaction, and returns the purchase-order summary.
// Validation and business errors pass through verbatim; unexpected failures
// are logged in full and surfaced as a generic transaction failure.
func (uc *UseCase) PurchaseFromDealer(ctx context.Context, actorID string, in dto.PurchaseFromDealerRequest) (*dto.PurchaseOrderResponse, error) {
	if err := validateRequest(actorID, in); err != nil {
		return nil, err
	}

	dealer, err := uc.dealerRepo.GetByID(ctx, in.DealerID)
	if err != nil {
		return nil, err
	}
	if dealer == nil || !dealer.IsActive {
		return nil, fmt.Errorf("%w: dealer %s", domain.ErrNotFound, in.DealerID)
	}

	now := time.Now()
	var po *entity.PurchaseOrder
	var touchedBarcodes []string

	err = uc.txRunner.RunPurchase(ctx, func(
		itemRepo repository.ItemRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.BatchRepository,
		orderRepo repository.PurchaseOrderRepository,
		counterRepo repository.CounterRepository,
	) error {
		poNumber := in.PONumber
		if poNumber == "" {
			seq, err := counterRepo.Next(ctx, "po:"+now.Format("2006"))
			if err != nil {
				return err
			}
			poNumber = fmt.Sprintf("PO-%s-%04d", now.Format("2006"), seq)
		}

		var (
			orderItems []entity.PurchaseOrderItem
			subtotal   decimal.Decimal
			taxTotal   decimal.Decimal
		)

		// Lines run strictly in input order: resolver decisions depend on
		// variants written by earlier lines of this same settlement.
		for i := range in.Items {
			line := &in.Items[i]

			item, err := uc.resolveItem(ctx, itemRepo, line, actorID, now)
			if err != nil {
				return err
			}

			variant, err := uc.mergeIntoVariant(ctx, variantRepo, item, line, actorID, now)
			if err != nil {
				return err
			}
			touchedBarcodes = append(touchedBarcodes, variant.Barcode)

			if err := uc.appendBatch(ctx, batchRepo, counterRepo, item, variant, line, poNumber, actorID, now); err != nil {
				return err
			}

			itemTotal := line.UnitCost.Mul(decimal.NewFromInt(line.Quantity))
			taxAmount := itemTotal.Mul(line.GSTPercentage).Div(decimal.NewFromInt(100))
			subtotal = subtotal.Add(itemTotal)
			taxTotal = taxTotal.Add(taxAmount)

			orderItems = append(orderItems, entity.PurchaseOrderItem{
				ID:            uuid.New().String(),
				ItemID:        item.ID,
				ItemName:      item.Name,
				Barcode:       variant.Barcode,
				Quantity:      line.Quantity,
				UnitPrice:     line.UnitCost,
				GSTPercentage: line.GSTPercentage,
				TotalPrice:    itemTotal.Add(taxAmount),
			})
		}

		po = &entity.PurchaseOrder{
			ID:                   uuid.New().String(),
			PONumber:             poNumber,
			DealerID:             in.DealerID,
			OrderDate:            now,
			ExpectedDeliveryDate: in.ExpectedDeliveryDate,
			Status:               entity.POStatusPending,
			PaymentTerms:         paymentTermsOrDefault(in.PaymentTerms),
			Items:                orderItems,
			Subtotal:             subtotal,
			TaxAmount:            taxTotal,
			DiscountAmount:       decimal.Zero,
			TotalAmount:          subtotal.Add(taxTotal),
			Notes:                in.Notes,
			CreatedBy:            actorID,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		return orderRepo.Create(ctx, po)
	})
	if err != nil {
		if domain.IsBusinessError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("dealer_id", in.DealerID).Str("actor", actorID).Msg("purchase settlement aborted")
		return nil, fmt.Errorf("%w: purchase order creation failed", domain.ErrTransactionFailure)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, touchedBarcodes...)
	}
	return toPurchaseOrderResponse(po), nil
}

// GetPurchaseOrder returns one order with its lines.
func (uc *UseCase) GetPurchaseOrder(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: purchase order %s", domain.ErrNotFound, id)
	}
	return toPurchaseOrderResponse(po), nil
}

// ListPurchaseOrders lists orders, optionally filtered by status.
func (uc *UseCase) ListPurchaseOrders(ctx context.Context, status string, page dto.PageRequest) ([]*dto.PurchaseOrderResponse, int, error) {
	page.DefaultPage()
	orders, total, err := uc.orderRepo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return out, total, nil
}

// resolveItem loads the referenced item or creates one from the line data.
// A line barcode already registered as an item's primary barcode attaches to
// that item instead of failing.
func (uc *UseCase) resolveItem(ctx context.Context, itemRepo repository.ItemRepository, line *dto.PurchaseLineRequest, actorID string, now time.Time) (*entity.Item, error) {
	if line.ItemID != "" {
		item, err := itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, line.ItemID)
		}
		if item.Barcode == "" {
			return nil, fmt.Errorf("%w: item %s has no primary barcode", domain.ErrValidation, item.ID)
		}
		return item, nil
	}

	existing, err := itemRepo.GetByBarcode(ctx, line.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          line.Name,
		Barcode:       line.Barcode,
		WeightValue:   line.WeightValue,
		WeightUnit:    line.WeightUnit,
		GSTPercentage: line.GSTPercentage,
		ImageURL:      defaultItemImage,
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// mergeIntoVariant resolves the receiving variant and applies the quantity
// merge with the weighted-average recompute. A barcode race with a concurrent
// settlement surfaces as a uniqueness violation on the insert. The violation
// aborts the enclosing transaction, so no in-transaction recovery is possible;
// the conflict is returned as-is and the caller retries the whole order.
func (uc *UseCase) mergeIntoVariant(ctx context.Context, variantRepo repository.VariantRepository, item *entity.Item, line *dto.PurchaseLineRequest, actorID string, now time.Time) (*entity.StockVariant, error) {
	variants, err := variantRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	res := inventory.ResolveVariant(item, variants, line.UnitCost, line.SalePrice, now)

	if res.Created {
		v := res.Variant
		v.ID = uuid.New().String()
		v.CurrentQuantity = line.Quantity
		v.MinimumStockLevel = line.MinimumStockLevel
		if v.MinimumStockLevel <= 0 {
			v.MinimumStockLevel = defaultMinimumStockLevel
		}
		v.LastUpdatedBy = actorID
		v.DeriveStatus()
		if err := variantRepo.Create(ctx, v); err != nil {
			if isConflict(err) {
				return nil, fmt.Errorf("%w: barcode %s claimed by a concurrent settlement", domain.ErrConflict, v.Barcode)
			}
			return nil, err
		}
		return v, nil
	}

	locked, err := variantRepo.GetByBarcodeForUpdate(ctx, res.Variant.Barcode)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, fmt.Errorf("%w: stock variant %s vanished mid-settlement", domain.ErrConflict, res.Variant.Barcode)
	}

	prevQty := locked.CurrentQuantity
	if res.Recycled || prevQty <= 0 {
		// Depleted variant: stale price history is discarded.
		locked.CurrentCostPrice = line.UnitCost
		locked.CurrentSalePrice = line.SalePrice
		locked.AverageCostPrice = line.UnitCost
	} else {
		locked.AverageCostPrice = inventory.WeightedAverageCost(prevQty, locked.AverageCostPrice, line.Quantity, line.UnitCost)
	}
	locked.CurrentQuantity = prevQty + line.Quantity
	if line.MinimumStockLevel > 0 {
		locked.MinimumStockLevel = line.MinimumStockLevel
	}
	locked.LastUpdatedBy = actorID
	locked.UpdatedAt = now
	locked.DeriveStatus()
	if err := variantRepo.Update(ctx, locked); err != nil {
		return nil, err
	}
	return locked, nil
}

// appendBatch writes the immutable purchase-event record for the line.
func (uc *UseCase) appendBatch(ctx context.Context, batchRepo repository.BatchRepository, counterRepo repository.CounterRepository, item *entity.Item, variant *entity.StockVariant, line *dto.PurchaseLineRequest, poNumber, actorID string, now time.Time) error {
	seq, err := counterRepo.Next(ctx, "batch")
	if err != nil {
		return err
	}
	batch := &entity.Batch{
		ID:                uuid.New().String(),
		ItemID:            item.ID,
		StockVariantID:    variant.ID,
		Barcode:           variant.Barcode,
		OriginalQuantity:  line.Quantity,
		RemainingQuantity: line.Quantity,
		CostPrice:         line.UnitCost,
		SalePrice:         line.SalePrice,
		PurchaseDate:      now,
		PurchaseReference: poNumber,
		BatchNumber:       fmt.Sprintf("%s-%s-%05d", batchPrefix(item.Name), now.Format("20060102"), seq),
		ExpiryDate:        line.ExpiryDate,
		IsActive:          true,
		CreatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return batchRepo.Create(ctx, batch)
}

// batchPrefix is the first four alphanumeric characters of the item name,
// uppercased, "ITEM" when the name yields none.
func batchPrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "ITEM"
	}
	return b.String()
}

func paymentTermsOrDefault(terms string) string {
	if terms == "" {
		return "Net 30"
	}
	return terms
}

func validateRequest(actorID string, in dto.PurchaseFromDealerRequest) error {
	if actorID == "" {
		return fmt.Errorf("%w: actor identity is required", domain.ErrValidation)
	}
	if in.DealerID == "" {
		return fmt.Errorf("%w: dealer id is required", domain.ErrValidation)
	}
	if in.ExpectedDeliveryDate.IsZero() {
		return fmt.Errorf("%w: expected delivery date is required", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: at least one line item is required", domain.ErrValidation)
	}
	for i, line := range in.Items {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: line %d: quantity must be positive", domain.ErrValidation, i+1)
		}
		if line.UnitCost.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line %d: unit price must be positive", domain.ErrValidation, i+1)
		}
		if line.SalePrice.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line %d: sale price must be positive", domain.ErrValidation, i+1)
		}
		if line.GSTPercentage.IsNegative() {
			return fmt.Errorf("%w: line %d: gst percentage cannot be negative", domain.ErrValidation, i+1)
		}
		if line.ItemID == "" {
			if line.Name == "" || line.Barcode == "" {
				return fmt.Errorf("%w: line %d: new items need a name and barcode", domain.ErrValidation, i+1)
			}
			if line.WeightValue.LessThanOrEqual(decimal.Zero) || !entity.ValidWeightUnit(line.WeightUnit) {
				return fmt.Errorf("%w: line %d: weight value and unit are required", domain.ErrValidation, i+1)
			}
		}
	}
	return nil
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict)
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:                   po.ID,
		PONumber:             po.PONumber,
		DealerID:             po.DealerID,
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		Status:               po.Status,
		PaymentTerms:         po.PaymentTerms,
		Subtotal:             po.Subtotal,
		TaxAmount:            po.TaxAmount,
		DiscountAmount:       po.DiscountAmount,
		TotalAmount:          po.TotalAmount,
		Items:                make([]dto.PurchaseOrderItemResponse, 0, len(po.Items)),
	}
	for _, it := range po.Items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ItemID:        it.ItemID,
			ItemName:      it.ItemName,
			Barcode:       it.Barcode,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			GSTPercentage: it.GSTPercentage,
			TotalPrice:    it.TotalPrice,
		})
	}
	return resp
}
