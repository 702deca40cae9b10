package selling

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

// SettleSale finalizes an in_progress sale: payment shape, additional
// discount, loyalty redemption, cash change, stock decrement, invoice number,
// point award. One transaction; any failure leaves stock, points and the sale
// untouched.
func (uc *UseCase) SettleSale(ctx context.Context, saleID, actorID string, in dto.SettleSaleRequest) (*dto.SettleSaleResponse, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor identity is required", domain.ErrValidation)
	}
	if in.AdditionalDiscount.IsNegative() {
		return nil, fmt.Errorf("%w: additional discount cannot be negative", domain.ErrValidation)
	}
	if in.LoyaltyPointsUsed < 0 {
		return nil, fmt.Errorf("%w: loyalty points cannot be negative", domain.ErrValidation)
	}

	now := time.Now()
	var (
		sale         *entity.Sale
		pointsEarned int64
		barcodes     []string
	)

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.BatchRepository,
		customerRepo repository.CustomerRepository,
		_ repository.ItemRepository,
		counterRepo repository.CounterRepository,
	) error {
		var err error
		sale, err = saleRepo.GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: sale %s", domain.ErrNotFound, saleID)
		}
		if sale.Status != entity.SaleStatusInProgress {
			return fmt.Errorf("%w: sale is %s, settlement needs in_progress", domain.ErrInvalidState, sale.Status)
		}

		details, err := validatePayment(in)
		if err != nil {
			return err
		}

		// Additional flat discount, floored at zero.
		total := sale.Total.Sub(in.AdditionalDiscount)
		if total.IsNegative() {
			total = decimal.Zero
		}

		// Loyalty redemption.
		var customer *entity.Customer
		if sale.CustomerID != "" {
			customer, err = customerRepo.GetByIDForUpdate(ctx, sale.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("%w: customer %s", domain.ErrNotFound, sale.CustomerID)
			}
		}
		pointsDiscount := decimal.Zero
		if in.LoyaltyPointsUsed > 0 {
			if customer == nil {
				return fmt.Errorf("%w: sale has no customer to redeem points from", domain.ErrValidation)
			}
			if customer.LoyaltyPoints < in.LoyaltyPointsUsed {
				return fmt.Errorf("%w: %d points held, %d requested", domain.ErrInsufficientPoints, customer.LoyaltyPoints, in.LoyaltyPointsUsed)
			}
			pointsDiscount = uc.loyalty.PointValue.Mul(decimal.NewFromInt(in.LoyaltyPointsUsed))
			total = total.Sub(pointsDiscount)
			if total.IsNegative() {
				total = decimal.Zero
			}
		}

		// Cash change.
		if in.PaymentMethod == entity.PaymentMethodCash {
			if in.AmountReceived.LessThan(total) {
				return fmt.Errorf("%w: received %s, total %s", domain.ErrInsufficientPayment, in.AmountReceived, total)
			}
			details.ChangeDue = in.AmountReceived.Sub(total)
		}

		// Stock decrement, cascading line match.
		for i := range sale.Items {
			variantID, barcode, err := uc.decrementLine(ctx, variantRepo, &sale.Items[i], actorID)
			if err != nil {
				return err
			}
			barcodes = append(barcodes, barcode)
			if err := uc.depleteBatches(ctx, batchRepo, variantID, sale.Items[i].Quantity); err != nil {
				return err
			}
		}

		// Invoice number: INV-YYMMDD-NNNN off a per-day counter, unique by
		// construction.
		seq, err := counterRepo.Next(ctx, "invoice:"+now.Format("060102"))
		if err != nil {
			return err
		}
		sale.InvoiceNumber = fmt.Sprintf("INV-%s-%04d", now.Format("060102"), seq)

		// Loyalty award and spend accumulation.
		if customer != nil {
			pointsEarned = total.Div(uc.loyalty.EarnThreshold).Floor().IntPart()
			customer.LoyaltyPoints += pointsEarned - in.LoyaltyPointsUsed
			customer.TotalSpent = customer.TotalSpent.Add(total)
			visit := now
			customer.LastVisitDate = &visit
			customer.UpdatedAt = now
			if err := customerRepo.Update(ctx, customer); err != nil {
				return err
			}
		}

		completed := now
		sale.Status = entity.SaleStatusCompleted
		sale.CompletedAt = &completed
		sale.PaymentMethod = in.PaymentMethod
		sale.PaymentDetails = details
		sale.AdditionalDiscount = in.AdditionalDiscount
		sale.PointsDiscount = pointsDiscount
		sale.LoyaltyPointsUsed = in.LoyaltyPointsUsed
		sale.Total = total
		sale.UpdatedAt = now
		return saleRepo.Update(ctx, sale)
	})
	if err != nil {
		if domain.IsBusinessError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("sale_id", saleID).Str("actor", actorID).Msg("sale settlement aborted")
		return nil, fmt.Errorf("%w: sale settlement failed", domain.ErrTransactionFailure)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, barcodes...)
	}
	return &dto.SettleSaleResponse{Sale: *toSaleResponse(sale), PointsEarned: pointsEarned}, nil
}

// decrementLine matches a sale line to stock and atomically subtracts its
// quantity: first the exact barcode, then any variant of the item, then any
// variant of the legacy item reference. The first variant with enough stock
// wins; no match fails the settlement.
func (uc *UseCase) decrementLine(ctx context.Context, variantRepo repository.VariantRepository, line *entity.SaleItem, actorID string) (variantID, barcode string, err error) {
	if line.Barcode != "" {
		variant, err := variantRepo.GetByBarcode(ctx, line.Barcode)
		if err != nil {
			return "", "", err
		}
		if variant != nil {
			ok, err := variantRepo.DecrementQuantity(ctx, variant.ID, line.Quantity, actorID)
			if err != nil {
				return "", "", err
			}
			if ok {
				return variant.ID, variant.Barcode, nil
			}
		}
	}

	for _, itemID := range []string{line.ItemID, line.LegacyItemID} {
		if itemID == "" {
			continue
		}
		variants, err := variantRepo.ListByItem(ctx, itemID)
		if err != nil {
			return "", "", err
		}
		for _, variant := range variants {
			ok, err := variantRepo.DecrementQuantity(ctx, variant.ID, line.Quantity, actorID)
			if err != nil {
				return "", "", err
			}
			if ok {
				return variant.ID, variant.Barcode, nil
			}
		}
	}

	return "", "", fmt.Errorf("%w: no stock matched for %q (barcode %s)", domain.ErrFulfillment, line.Name, line.Barcode)
}

// depleteBatches walks the variant's active batches oldest purchase first and
// subtracts the sold quantity, deactivating exhausted batches. The ledger is
// best-effort provenance: running out of batch quantity does not fail the sale.
func (uc *UseCase) depleteBatches(ctx context.Context, batchRepo repository.BatchRepository, variantID string, qty int64) error {
	batches, err := batchRepo.ListActiveByVariant(ctx, variantID)
	if err != nil {
		return err
	}
	left := qty
	for _, b := range batches {
		if left <= 0 {
			break
		}
		take := b.RemainingQuantity
		if take > left {
			take = left
		}
		remaining := b.RemainingQuantity - take
		if err := batchRepo.UpdateDepletion(ctx, b.ID, remaining, remaining > 0); err != nil {
			return err
		}
		left -= take
	}
	return nil
}

func validatePayment(in dto.SettleSaleRequest) (entity.PaymentDetails, error) {
	var details entity.PaymentDetails
	switch in.PaymentMethod {
	case entity.PaymentMethodCash:
		if in.AmountReceived.LessThanOrEqual(decimal.Zero) {
			return details, fmt.Errorf("%w: cash payment needs a positive amount received", domain.ErrValidation)
		}
		details.AmountReceived = in.AmountReceived
	case entity.PaymentMethodCard:
		if in.CardDetails == "" {
			return details, fmt.Errorf("%w: card payment needs card details", domain.ErrValidation)
		}
		details.CardDetails = in.CardDetails
	case entity.PaymentMethodUPI:
		if in.UPITransactionID == "" {
			return details, fmt.Errorf("%w: upi payment needs a transaction id", domain.ErrValidation)
		}
		details.UPITransactionID = in.UPITransactionID
	default:
		return details, fmt.Errorf("%w: unsupported payment method %q", domain.ErrValidation, in.PaymentMethod)
	}
	return details, nil
}
