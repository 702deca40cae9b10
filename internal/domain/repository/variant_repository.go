package repository

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// VariantRepository is the persistence port for stock variants. Used inside
// transactions to guarantee consistency; ListByItem must observe rows written
// earlier in the same transaction.
type VariantRepository interface {
	Create(ctx context.Context, v *entity.StockVariant) error
	GetByBarcode(ctx context.Context, barcode string) (*entity.StockVariant, error)
	// GetByBarcodeForUpdate locks the row (SELECT FOR UPDATE) for a merge.
	GetByBarcodeForUpdate(ctx context.Context, barcode string) (*entity.StockVariant, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockVariant, error)
	Update(ctx context.Context, v *entity.StockVariant) error
	// DecrementQuantity atomically subtracts qty where enough stock remains and
	// rederives the status. Returns false when the variant is missing or short.
	DecrementQuantity(ctx context.Context, variantID string, qty int64, actor string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockVariant, int, error)
	ListLowStock(ctx context.Context, limit int) ([]*entity.StockVariant, error)
}
