package selling

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
	"github.com/sayanm085/shopnex-api/pkg/logger"
)

// LoyaltyConfig fixes the redemption value of one point and the spend needed
// to earn one (points earned = floor(total / EarnThreshold)).
type LoyaltyConfig struct {
	PointValue    decimal.Decimal
	EarnThreshold decimal.Decimal
}

// DefaultLoyalty is one rupee per point, one point per hundred spent.
func DefaultLoyalty() LoyaltyConfig {
	return LoyaltyConfig{PointValue: decimal.NewFromInt(1), EarnThreshold: decimal.NewFromInt(100)}
}

// UseCase builds sale orders and settles them. Building validates the cart and
// reserves nothing; settlement is the single point where stock moves.
type UseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	loyalty      LoyaltyConfig
	cache        CacheInvalidator
	receipts     ReceiptGenerator
	log          *logger.Logger
}

// NewUseCase builds the selling usecase.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository, loyalty LoyaltyConfig, cache CacheInvalidator, receipts ReceiptGenerator, log *logger.Logger) *UseCase {
	if loyalty.PointValue.LessThanOrEqual(decimal.Zero) || loyalty.EarnThreshold.LessThanOrEqual(decimal.Zero) {
		loyalty = DefaultLoyalty()
	}
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo, customerRepo: customerRepo, loyalty: loyalty, cache: cache, receipts: receipts, log: log}
}

// GetSale returns one sale.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: sale %s", domain.ErrNotFound, id)
	}
	return toSaleResponse(sale), nil
}

// SaleReceiptPDF renders the receipt of a completed sale.
func (uc *UseCase) SaleReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: sale %s", domain.ErrNotFound, id)
	}
	if sale.Status != entity.SaleStatusCompleted {
		return nil, fmt.Errorf("%w: sale is %s, receipt needs a completed sale", domain.ErrInvalidState, sale.Status)
	}
	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return nil, err
		}
	}
	return uc.receipts.GenerateReceipt(ctx, sale, customer)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:                 s.ID,
		Date:               s.Date,
		CustomerID:         s.CustomerID,
		Subtotal:           s.Subtotal,
		TaxAmount:          s.TaxAmount,
		DiscountAmount:     s.DiscountAmount,
		AdditionalDiscount: s.AdditionalDiscount,
		PointsDiscount:     s.PointsDiscount,
		LoyaltyPointsUsed:  s.LoyaltyPointsUsed,
		Total:              s.Total,
		Status:             s.Status,
		PaymentMethod:      s.PaymentMethod,
		ChangeDue:          s.PaymentDetails.ChangeDue,
		CounterNumber:      s.CounterNumber,
		InvoiceNumber:      s.InvoiceNumber,
		CompletedAt:        s.CompletedAt,
		Items:              make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ItemID:          it.ItemID,
			Name:            it.Name,
			Barcode:         it.Barcode,
			Quantity:        it.Quantity,
			Price:           it.Price,
			GSTPercentage:   it.GSTPercentage,
			TaxAmount:       it.TaxAmount,
			DiscountPercent: it.DiscountPercent,
			DiscountAmount:  it.DiscountAmount,
			TotalPrice:      it.TotalPrice,
		})
	}
	return resp
}
