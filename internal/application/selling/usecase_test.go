package selling_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/selling"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/infrastructure/memory"
	"github.com/sayanm085/shopnex-api/pkg/logger"
)

const testActor = "cashier-1"

func newSellingFixture(t *testing.T) (*memory.Store, *selling.UseCase) {
	t.Helper()
	store := memory.NewStore()
	uc := selling.NewUseCase(memory.NewTxRunner(store), store.Sales(), store.Customers(),
		selling.DefaultLoyalty(), nil, nil, logger.Nop())
	return store, uc
}

// seedStock creates an item and one stocked variant, returning both.
func seedStock(t *testing.T, store *memory.Store, name, barcode string, qty int64, salePrice, gst float64) (*entity.Item, *entity.StockVariant) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	item := &entity.Item{
		ID:            "item-" + barcode,
		Name:          name,
		Barcode:       barcode,
		WeightValue:   decimal.NewFromInt(1),
		WeightUnit:    entity.UnitKg,
		GSTPercentage: decimal.NewFromFloat(gst),
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

func seedCustomer(t *testing.T, store *memory.Store, id, name, phone string, points int64) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		ID:            id,
		Name:          name,
		Phone:         phone,
		LoyaltyPoints: points,
		TotalSpent:    decimal.Zero,
		TotalVisits:   1,
	}
	require.NoError(t, store.Customers().Create(context.Background(), c))
	return c
}

func mustCreateOrder(t *testing.T, uc *selling.UseCase, in dto.CreateSaleOrderRequest) *dto.SaleResponse {
	t.Helper()
	sale, err := uc.CreateSaleOrder(context.Background(), testActor, in)
	require.NoError(t, err)
	return sale
}

func TestCreateSaleOrder_PricesLinesWithoutMovingStock(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100, 5)

	sale := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "RICE5", Quantity: 3}},
	})

	assert.Equal(t, entity.SaleStatusInProgress, sale.Status)
	assert.Empty(t, sale.InvoiceNumber)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(300)), "subtotal %s", sale.Subtotal)
	assert.True(t, sale.TaxAmount.Equal(decimal.NewFromInt(15)), "tax %s", sale.TaxAmount)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(315)), "total %s", sale.Total)

	// Availability was checked, the quantity was not touched.
	v, err := store.Variants().GetByBarcode(context.Background(), "RICE5")
	require.NoError(t, err)
	assert.Equal(t, int64(40), v.CurrentQuantity)
}

func TestCreateSaleOrder_AppliesItemDiscountOnOptIn(t *testing.T) {
	store, uc := newSellingFixture(t)
	item, _ := seedStock(t, store, "Ghee 1L", "GHEE1", 20, 500, 12)
	item.DiscountPercent = decimal.NewFromInt(10)
	require.NoError(t, store.Items().Update(context.Background(), item))

	withOptIn := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "GHEE1", Quantity: 1, ApplyDiscount: true}},
	})
	withoutOptIn := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "GHEE1", Quantity: 1}},
	})

	// 500 + 12% tax = 560, minus 10% of base (50) when opted in.
	assert.True(t, withOptIn.Total.Equal(decimal.NewFromInt(510)), "total %s", withOptIn.Total)
	assert.True(t, withoutOptIn.Total.Equal(decimal.NewFromInt(560)), "total %s", withoutOptIn.Total)
}

func TestCreateSaleOrder_InsufficientStockRejectsWholeCart(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Sugar 1kg", "SUGAR1", 2, 50, 0)
	seedStock(t, store, "Salt 1kg", "SALT1", 100, 20, 0)

	_, err := uc.CreateSaleOrder(context.Background(), testActor, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{
			{Barcode: "SALT1", Quantity: 1},
			{Barcode: "SUGAR1", Quantity: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	sales, total, listErr := store.Sales().List(context.Background(), "", 10, 0)
	require.NoError(t, listErr)
	assert.Zero(t, total)
	assert.Empty(t, sales)
}

func TestCreateSaleOrder_ResolvesLineByItemPrimaryBarcode(t *testing.T) {
	store, uc := newSellingFixture(t)
	item, _ := seedStock(t, store, "Tea 250g", "TEA250", 15, 80, 5)

	sale := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{ItemID: item.ID, Quantity: 2}},
	})

	require.Len(t, sale.Items, 1)
	assert.Equal(t, "TEA250", sale.Items[0].Barcode)
}

func TestCreateSaleOrder_UnknownBarcodeIsNotFound(t *testing.T) {
	_, uc := newSellingFixture(t)

	_, err := uc.CreateSaleOrder(context.Background(), testActor, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "NOPE", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSaleOrder_RegistersCustomerByPhone(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Milk 1L", "MILK1", 30, 60, 0)

	sale := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items:    []dto.SaleLineRequest{{Barcode: "MILK1", Quantity: 1}},
		Customer: &dto.CustomerInfoRequest{Phone: "9876500001", Name: "Asha"},
	})

	require.NotEmpty(t, sale.CustomerID)
	c, err := store.Customers().GetByPhone(context.Background(), "9876500001")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Asha", c.Name)
	assert.Equal(t, int64(1), c.TotalVisits)
}

func TestCreateSaleOrder_ExistingPhoneCountsVisit(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Milk 1L", "MILK1", 30, 60, 0)
	seedCustomer(t, store, "cust-1", "Ravi", "9876500002", 0)

	sale := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items:    []dto.SaleLineRequest{{Barcode: "MILK1", Quantity: 1}},
		Customer: &dto.CustomerInfoRequest{Phone: "9876500002"},
	})

	assert.Equal(t, "cust-1", sale.CustomerID)
	c, err := store.Customers().GetByID(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.TotalVisits)
}

func TestCreateSaleOrder_NewPhoneNeedsName(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Milk 1L", "MILK1", 30, 60, 0)

	_, err := uc.CreateSaleOrder(context.Background(), testActor, dto.CreateSaleOrderRequest{
		Items:    []dto.SaleLineRequest{{Barcode: "MILK1", Quantity: 1}},
		Customer: &dto.CustomerInfoRequest{Phone: "9876500003"},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSettleSale_CashComputesChangeAndDecrementsStock(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100, 5)
	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "RICE5", Quantity: 3}},
	})

	res, err := uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.NewFromInt(400),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, res.Sale.Status)
	assert.True(t, res.Sale.ChangeDue.Equal(decimal.NewFromInt(85)), "change %s", res.Sale.ChangeDue)
	require.NotNil(t, res.Sale.CompletedAt)

	expectedInvoice := fmt.Sprintf("INV-%s-0001", time.Now().Format("060102"))
	assert.Equal(t, expectedInvoice, res.Sale.InvoiceNumber)

	v, err := store.Variants().GetByBarcode(context.Background(), "RICE5")
	require.NoError(t, err)
	assert.Equal(t, int64(37), v.CurrentQuantity)
	assert.Equal(t, testActor, v.LastUpdatedBy)
}

func TestSettleSale_InvoiceNumbersIncrementPerDay(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Milk 1L", "MILK1", 90, 60, 0)

	for i := 1; i <= 3; i++ {
		order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
			Items: []dto.SaleLineRequest{{Barcode: "MILK1", Quantity: 1}},
		})
		res, err := uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
			PaymentMethod:  entity.PaymentMethodCash,
			AmountReceived: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%s-%04d", time.Now().Format("060102"), i), res.Sale.InvoiceNumber)
	}

	v, err := store.Variants().GetByBarcode(context.Background(), "MILK1")
	require.NoError(t, err)
	assert.Equal(t, int64(87), v.CurrentQuantity)
}

func TestSettleSale_SecondSettlementIsInvalidState(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Milk 1L", "MILK1", 30, 60, 0)
	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "MILK1", Quantity: 1}},
	})

	pay := dto.SettleSaleRequest{PaymentMethod: entity.PaymentMethodCash, AmountReceived: decimal.NewFromInt(100)}
	_, err := uc.SettleSale(context.Background(), order.ID, testActor, pay)
	require.NoError(t, err)

	_, err = uc.SettleSale(context.Background(), order.ID, testActor, pay)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// The double settlement must not decrement twice.
	v, verr := store.Variants().GetByBarcode(context.Background(), "MILK1")
	require.NoError(t, verr)
	assert.Equal(t, int64(29), v.CurrentQuantity)
}

func TestSettleSale_CashUnderpaymentLeavesEverythingUntouched(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Basmati Rice 5kg", "RICE5", 40, 100, 5)
	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "RICE5", Quantity: 3}},
	})

	_, err := uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.NewFromInt(300), // total is 315
	})
	require.ErrorIs(t, err, domain.ErrInsufficientPayment)

	v, verr := store.Variants().GetByBarcode(context.Background(), "RICE5")
	require.NoError(t, verr)
	assert.Equal(t, int64(40), v.CurrentQuantity)

	sale, serr := store.Sales().GetByID(context.Background(), order.ID)
	require.NoError(t, serr)
	assert.Equal(t, entity.SaleStatusInProgress, sale.Status)
}

func TestSettleSale_PaymentShapeValidation(t *testing.T) {
	cases := []struct {
		name string
		in   dto.SettleSaleRequest
	}{
		{"cash without amount", dto.SettleSaleRequest{PaymentMethod: entity.PaymentMethodCash}},
		{"card without details", dto.SettleSaleRequest{PaymentMethod: entity.PaymentMethodCard}},
		{"upi without transaction id", dto.SettleSaleRequest{PaymentMethod: entity.PaymentMethodUPI}},
		{"unknown method", dto.SettleSaleRequest{PaymentMethod: "cheque"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, uc := newSellingFixture(t)
			seedStock(t, store, "Milk 1L", "MILK1", 30, 60, 0)
			order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
				Items: []dto.SaleLineRequest{{Barcode: "MILK1", Quantity: 1}},
			})
			_, err := uc.SettleSale(context.Background(), order.ID, testActor, tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSettleSale_LoyaltyRedemptionAndEarn(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Ghee 1L", "GHEE1", 20, 500, 0)
	seedCustomer(t, store, "cust-1", "Ravi", "9876500010", 120)

	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items:    []dto.SaleLineRequest{{Barcode: "GHEE1", Quantity: 1}},
		Customer: &dto.CustomerInfoRequest{CustomerID: "cust-1"},
	})

	res, err := uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:     entity.PaymentMethodUPI,
		UPITransactionID:  "upi-123",
		LoyaltyPointsUsed: 100,
	})
	require.NoError(t, err)

	// 500 - 100 points * 1 = 400; earns floor(400/100) = 4 points.
	assert.True(t, res.Sale.Total.Equal(decimal.NewFromInt(400)), "total %s", res.Sale.Total)
	assert.Equal(t, int64(4), res.PointsEarned)

	c, cerr := store.Customers().GetByID(context.Background(), "cust-1")
	require.NoError(t, cerr)
	assert.Equal(t, int64(120-100+4), c.LoyaltyPoints)
	assert.True(t, c.TotalSpent.Equal(decimal.NewFromInt(400)))
}

func TestSettleSale_InsufficientPointsWritesNothing(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Ghee 1L", "GHEE1", 20, 500, 0)
	seedCustomer(t, store, "cust-1", "Ravi", "9876500011", 10)

	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items:    []dto.SaleLineRequest{{Barcode: "GHEE1", Quantity: 1}},
		Customer: &dto.CustomerInfoRequest{CustomerID: "cust-1"},
	})

	_, err := uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:     entity.PaymentMethodCash,
		AmountReceived:    decimal.NewFromInt(600),
		LoyaltyPointsUsed: 50,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientPoints)

	c, cerr := store.Customers().GetByID(context.Background(), "cust-1")
	require.NoError(t, cerr)
	assert.Equal(t, int64(10), c.LoyaltyPoints)
	v, verr := store.Variants().GetByBarcode(context.Background(), "GHEE1")
	require.NoError(t, verr)
	assert.Equal(t, int64(20), v.CurrentQuantity)
}

func TestSettleSale_RedemptionWithoutCustomerIsValidation(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Milk 1L", "MILK1", 30, 60, 0)
	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "MILK1", Quantity: 1}},
	})

	_, err := uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:     entity.PaymentMethodCash,
		AmountReceived:    decimal.NewFromInt(100),
		LoyaltyPointsUsed: 10,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSettleSale_AdditionalDiscountFloorsAtZero(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Salt 1kg", "SALT1", 100, 20, 0)
	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "SALT1", Quantity: 1}},
	})

	res, err := uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:      entity.PaymentMethodCash,
		AmountReceived:     decimal.NewFromInt(1),
		AdditionalDiscount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, res.Sale.Total.IsZero(), "total %s", res.Sale.Total)
	assert.Zero(t, res.PointsEarned)
}

func TestSettleSale_DepletedLineFailsFulfillmentAtomically(t *testing.T) {
	store, uc := newSellingFixture(t)
	seedStock(t, store, "Sugar 1kg", "SUGAR1", 5, 50, 0)
	seedStock(t, store, "Salt 1kg", "SALT1", 100, 20, 0)

	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{
			{Barcode: "SALT1", Quantity: 2},
			{Barcode: "SUGAR1", Quantity: 5},
		},
	})

	// A rival counter drains the sugar between order and settlement.
	ok, err := store.Variants().DecrementQuantity(context.Background(), "var-SUGAR1", 3, "cashier-2")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.NewFromInt(500),
	})
	require.ErrorIs(t, err, domain.ErrFulfillment)

	// The salt decrement of the same settlement must have rolled back.
	v, verr := store.Variants().GetByBarcode(context.Background(), "SALT1")
	require.NoError(t, verr)
	assert.Equal(t, int64(100), v.CurrentQuantity)

	sale, serr := store.Sales().GetByID(context.Background(), order.ID)
	require.NoError(t, serr)
	assert.Equal(t, entity.SaleStatusInProgress, sale.Status)
}

func TestSettleSale_CascadesToSiblingVariant(t *testing.T) {
	store, uc := newSellingFixture(t)
	item, _ := seedStock(t, store, "Basmati Rice 5kg", "RICE5", 3, 100, 0)

	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "RICE5", Quantity: 3}},
	})

	// The priced variant is drained, but a sibling variant of the same item
	// still holds stock; settlement falls through to it.
	ok, err := store.Variants().DecrementQuantity(context.Background(), "var-RICE5", 3, "cashier-2")
	require.NoError(t, err)
	require.True(t, ok)

	sibling := &entity.StockVariant{
		ID:                "var-RICE5-b",
		ItemID:            item.ID,
		Barcode:           "RICE5-000001",
		CurrentQuantity:   10,
		CurrentSalePrice:  decimal.NewFromInt(110),
		MinimumStockLevel: 10,
	}
	sibling.DeriveStatus()
	require.NoError(t, store.Variants().Create(context.Background(), sibling))

	_, err = uc.SettleSale(context.Background(), order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	v, verr := store.Variants().GetByBarcode(context.Background(), "RICE5-000001")
	require.NoError(t, verr)
	assert.Equal(t, int64(7), v.CurrentQuantity)
}

func TestSettleSale_DepletesBatchesOldestFirst(t *testing.T) {
	store, uc := newSellingFixture(t)
	item, variant := seedStock(t, store, "Tea 250g", "TEA250", 12, 80, 0)

	ctx := context.Background()
	older := &entity.Batch{
		ID:                "batch-1",
		ItemID:            item.ID,
		StockVariantID:    variant.ID,
		Barcode:           variant.Barcode,
		OriginalQuantity:  5,
		RemainingQuantity: 5,
		PurchaseDate:      time.Now().Add(-48 * time.Hour),
		BatchNumber:       "TEA2-20250830-00001",
		IsActive:          true,
	}
	newer := &entity.Batch{
		ID:                "batch-2",
		ItemID:            item.ID,
		StockVariantID:    variant.ID,
		Barcode:           variant.Barcode,
		OriginalQuantity:  7,
		RemainingQuantity: 7,
		PurchaseDate:      time.Now().Add(-2 * time.Hour),
		BatchNumber:       "TEA2-20250901-00001",
		IsActive:          true,
	}
	require.NoError(t, store.Batches().Create(ctx, older))
	require.NoError(t, store.Batches().Create(ctx, newer))

	order := mustCreateOrder(t, uc, dto.CreateSaleOrderRequest{
		Items: []dto.SaleLineRequest{{Barcode: "TEA250", Quantity: 7}},
	})
	_, err := uc.SettleSale(ctx, order.ID, testActor, dto.SettleSaleRequest{
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.NewFromInt(600),
	})
	require.NoError(t, err)

	// 7 sold: the older batch (5) is exhausted and deactivated, the newer one
	// gives up the remaining 2.
	active, berr := store.Batches().ListActiveByVariant(ctx, variant.ID)
	require.NoError(t, berr)
	require.Len(t, active, 1)
	assert.Equal(t, "batch-2", active[0].ID)
	assert.Equal(t, int64(5), active[0].RemainingQuantity)
}

func TestSettleSale_UnknownSaleIsNotFound(t *testing.T) {
	_, uc := newSellingFixture(t)
	_, err := uc.SettleSale(context.Background(), "missing", testActor, dto.SettleSaleRequest{
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettleSale_RequiresActor(t *testing.T) {
	_, uc := newSellingFixture(t)
	_, err := uc.SettleSale(context.Background(), "any", "", dto.SettleSaleRequest{
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
