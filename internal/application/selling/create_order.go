package selling

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

// CreateSaleOrder validates a cart, resolves every line to an exact stock
// variant, prices it, and persists an in_progress sale. Stock is only checked
// for availability here; the decrement happens at settlement, so an abandoned
// order never strands quantity.
func (uc *UseCase) CreateSaleOrder(ctx context.Context, actorID string, in dto.CreateSaleOrderRequest) (*dto.SaleResponse, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor identity is required", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}
	for i, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d: quantity must be positive", domain.ErrValidation, i+1)
		}
		if line.Barcode == "" && line.ItemID == "" {
			return nil, fmt.Errorf("%w: line %d: barcode or item id is required", domain.ErrValidation, i+1)
		}
	}

	now := time.Now()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		variantRepo repository.VariantRepository,
		_ repository.BatchRepository,
		customerRepo repository.CustomerRepository,
		itemRepo repository.ItemRepository,
		_ repository.CounterRepository,
	) error {
		customerID, err := uc.resolveCustomer(ctx, customerRepo, in.Customer, now)
		if err != nil {
			return err
		}

		var (
			items         []entity.SaleItem
			subtotal      decimal.Decimal
			taxTotal      decimal.Decimal
			discountTotal decimal.Decimal
		)
		for i := range in.Items {
			line := &in.Items[i]

			variant, err := uc.lineVariant(ctx, variantRepo, itemRepo, line)
			if err != nil {
				return err
			}
			item, err := itemRepo.GetByID(ctx, variant.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: item %s behind barcode %s", domain.ErrNotFound, variant.ItemID, variant.Barcode)
			}
			if variant.CurrentQuantity < line.Quantity {
				return fmt.Errorf("%w: %s has %d left, %d requested", domain.ErrInsufficientStock, item.Name, variant.CurrentQuantity, line.Quantity)
			}

			price := variant.CurrentSalePrice
			base := price.Mul(decimal.NewFromInt(line.Quantity))
			tax := base.Mul(item.GSTPercentage).Div(decimal.NewFromInt(100))
			discountPct := decimal.Zero
			discount := decimal.Zero
			if line.ApplyDiscount && item.DiscountPercent.GreaterThan(decimal.Zero) {
				discountPct = item.DiscountPercent
				discount = base.Mul(discountPct).Div(decimal.NewFromInt(100))
			}

			subtotal = subtotal.Add(base)
			taxTotal = taxTotal.Add(tax)
			discountTotal = discountTotal.Add(discount)

			items = append(items, entity.SaleItem{
				ID:              uuid.New().String(),
				ItemID:          item.ID,
				LegacyItemID:    line.ItemID,
				Name:            item.Name,
				Barcode:         variant.Barcode,
				Quantity:        line.Quantity,
				Price:           price,
				GSTPercentage:   item.GSTPercentage,
				TaxAmount:       tax,
				DiscountPercent: discountPct,
				DiscountAmount:  discount,
				TotalPrice:      base.Add(tax).Sub(discount),
			})
		}

		sale = &entity.Sale{
			ID:                 uuid.New().String(),
			Date:               now,
			CustomerID:         customerID,
			Items:              items,
			Subtotal:           subtotal,
			TaxAmount:          taxTotal,
			DiscountAmount:     discountTotal,
			AdditionalDiscount: decimal.Zero,
			PointsDiscount:     decimal.Zero,
			Total:              subtotal.Add(taxTotal).Sub(discountTotal),
			Status:             entity.SaleStatusInProgress,
			CounterNumber:      in.CounterNumber,
			CreatedBy:          actorID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		if domain.IsBusinessError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("actor", actorID).Msg("sale order creation aborted")
		return nil, fmt.Errorf("%w: sale order creation failed", domain.ErrTransactionFailure)
	}

	return toSaleResponse(sale), nil
}

// lineVariant resolves a cart line to its exact stock variant: by the line's
// barcode when given, otherwise via the item's primary barcode.
func (uc *UseCase) lineVariant(ctx context.Context, variantRepo repository.VariantRepository, itemRepo repository.ItemRepository, line *dto.SaleLineRequest) (*entity.StockVariant, error) {
	barcode := line.Barcode
	if barcode == "" {
		item, err := itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, line.ItemID)
		}
		if item.Barcode == "" {
			return nil, fmt.Errorf("%w: item %s has no stock variant", domain.ErrNotFound, item.Name)
		}
		barcode = item.Barcode
	}
	variant, err := variantRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("%w: no stock variant with barcode %s", domain.ErrNotFound, barcode)
	}
	return variant, nil
}

// resolveCustomer attaches the sale to a loyalty customer. An explicit ID must
// exist; a phone number either attaches to the existing customer (counting the
// visit and backfilling missing contact data) or registers a new one.
func (uc *UseCase) resolveCustomer(ctx context.Context, customerRepo repository.CustomerRepository, info *dto.CustomerInfoRequest, now time.Time) (string, error) {
	if info == nil || (info.CustomerID == "" && info.Phone == "") {
		return "", nil // walk-in sale
	}

	if info.CustomerID != "" {
		customer, err := customerRepo.GetByID(ctx, info.CustomerID)
		if err != nil {
			return "", err
		}
		if customer == nil {
			return "", fmt.Errorf("%w: customer %s", domain.ErrNotFound, info.CustomerID)
		}
		return customer.ID, nil
	}

	customer, err := customerRepo.GetByPhone(ctx, info.Phone)
	if err != nil {
		return "", err
	}
	if customer != nil {
		customer.TotalVisits++
		if customer.Name == "" {
			customer.Name = info.Name
		}
		if customer.Email == "" {
			customer.Email = info.Email
		}
		visit := now
		customer.LastVisitDate = &visit
		customer.UpdatedAt = now
		if err := customerRepo.Update(ctx, customer); err != nil {
			return "", err
		}
		return customer.ID, nil
	}

	if info.Name == "" {
		return "", fmt.Errorf("%w: a name is required to register customer %s", domain.ErrValidation, info.Phone)
	}
	visit := now
	customer = &entity.Customer{
		ID:            uuid.New().String(),
		Name:          info.Name,
		Phone:         info.Phone,
		Email:         info.Email,
		TotalSpent:    decimal.Zero,
		TotalVisits:   1,
		LastVisitDate: &visit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := customerRepo.Create(ctx, customer); err != nil {
		return "", err
	}
	return customer.ID, nil
}
