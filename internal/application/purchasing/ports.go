package purchasing

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

// TxRunner runs a function inside one database transaction, handing it
// repositories bound to that transaction. It guarantees the purchase
// settlement is atomic: item creation, every variant upsert, every batch
// insert and the purchase-order insert commit or roll back together.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.BatchRepository,
		orderRepo repository.PurchaseOrderRepository,
		counterRepo repository.CounterRepository,
	) error) error
}
