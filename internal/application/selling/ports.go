package selling

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

// TxRunner runs a function inside one database transaction with repositories
// bound to that transaction. Both the order builder and the settlement use it;
// failure aborts every write of the call, including partial stock decrements.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.BatchRepository,
		customerRepo repository.CustomerRepository,
		itemRepo repository.ItemRepository,
		counterRepo repository.CounterRepository,
	) error) error
}

// CacheInvalidator drops cached barcode lookups after stock changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, barcodes ...string)
}

// ReceiptGenerator renders a completed sale as a printable receipt.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, customer *entity.Customer) ([]byte, error)
}
