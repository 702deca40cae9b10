package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implements BatchRepository over PostgreSQL (usable with pool or tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository builds the batch-ledger adapter. Pass a pool or tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, item_id, stock_variant_id, barcode, original_quantity, remaining_quantity, cost_price, sale_price, purchase_date, purchase_reference, batch_number, expiry_date, is_active, created_by, created_at, updated_at`

// Create appends one immutable purchase event to the ledger.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO inventory_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ItemID, b.StockVariantID, b.Barcode, b.OriginalQuantity, b.RemainingQuantity,
		b.CostPrice, b.SalePrice, b.PurchaseDate, b.PurchaseReference, b.BatchNumber,
		b.ExpiryDate, b.IsActive, b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: batch number %s", domain.ErrConflict, b.BatchNumber)
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// ListActiveByVariant returns the active batches of a variant, oldest purchase
// first, which is the depletion order.
func (r *BatchRepo) ListActiveByVariant(ctx context.Context, variantID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches
		WHERE stock_variant_id = $1 AND is_active ORDER BY purchase_date, created_at`
	return r.list(ctx, query, variantID)
}

// ListActiveByItem returns the active batches across all variants of an item.
func (r *BatchRepo) ListActiveByItem(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches
		WHERE item_id = $1 AND is_active ORDER BY purchase_date, created_at`
	return r.list(ctx, query, itemID)
}

// UpdateDepletion persists the only mutable batch fields.
func (r *BatchRepo) UpdateDepletion(ctx context.Context, batchID string, remainingQuantity int64, isActive bool) error {
	query := `UPDATE inventory_batches SET remaining_quantity = $2, is_active = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, batchID, remainingQuantity, isActive, time.Now())
	if err != nil {
		return fmt.Errorf("update batch depletion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: batch %s", domain.ErrNotFound, batchID)
	}
	return nil
}

func (r *BatchRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var reference *string
	err := row.Scan(
		&b.ID, &b.ItemID, &b.StockVariantID, &b.Barcode, &b.OriginalQuantity, &b.RemainingQuantity,
		&b.CostPrice, &b.SalePrice, &b.PurchaseDate, &reference, &b.BatchNumber,
		&b.ExpiryDate, &b.IsActive, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.PurchaseReference = emptyIfNil(reference)
	return &b, nil
}
