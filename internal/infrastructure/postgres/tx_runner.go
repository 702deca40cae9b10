package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sayanm085/shopnex-api/internal/application/purchasing"
	"github.com/sayanm085/shopnex-api/internal/application/selling"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

// Ensure TxRunner satisfies both settlement runners.
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ selling.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPurchase begins a transaction, runs fn with repositories bound to it, and
// commits or rolls back.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	variantRepo repository.VariantRepository,
	batchRepo repository.BatchRepository,
	orderRepo repository.PurchaseOrderRepository,
	counterRepo repository.CounterRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewItemRepository(tx),
		NewVariantRepository(tx),
		NewBatchRepository(tx),
		NewPurchaseOrderRepository(tx),
		NewCounterRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale begins a transaction with the repositories the sale engines need and
// commits or rolls back.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	variantRepo repository.VariantRepository,
	batchRepo repository.BatchRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	counterRepo repository.CounterRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewSaleRepository(tx),
		NewVariantRepository(tx),
		NewBatchRepository(tx),
		NewCustomerRepository(tx),
		NewItemRepository(tx),
		NewCounterRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
