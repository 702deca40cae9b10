package memory

import (
	"context"
	"sync"

	"github.com/sayanm085/shopnex-api/internal/application/purchasing"
	"github.com/sayanm085/shopnex-api/internal/application/selling"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ selling.TxRunner = (*TxRunner)(nil)

// TxRunner emulates database transactions over a Store. A run mutex serializes
// transactional closures; on error the pre-transaction snapshot is restored,
// giving the same all-or-nothing outcome as a rolled-back transaction.
type TxRunner struct {
	store *Store
	runMu sync.Mutex
}

func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	repository.ItemRepository,
	repository.VariantRepository,
	repository.BatchRepository,
	repository.PurchaseOrderRepository,
	repository.CounterRepository,
) error) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	snap := r.store.snapshot()
	err := fn(r.store.Items(), r.store.Variants(), r.store.Batches(), r.store.PurchaseOrders(), r.store.Counters())
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

func (r *TxRunner) RunSale(ctx context.Context, fn func(
	repository.SaleRepository,
	repository.VariantRepository,
	repository.BatchRepository,
	repository.CustomerRepository,
	repository.ItemRepository,
	repository.CounterRepository,
) error) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	snap := r.store.snapshot()
	err := fn(r.store.Sales(), r.store.Variants(), r.store.Batches(), r.store.Customers(), r.store.Items(), r.store.Counters())
	if err != nil {
		r.store.restore(snap)
	}
	return err
}
