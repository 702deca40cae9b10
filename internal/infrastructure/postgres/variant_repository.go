package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implements VariantRepository over PostgreSQL (usable with pool or tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository builds the stock-variant adapter. Pass a pool or tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, item_id, barcode, current_quantity, current_cost_price, current_sale_price, average_cost_price, minimum_stock_level, status, last_updated_by, created_at, updated_at`

// Create persists a new variant. The barcode unique index is the arbiter of
// concurrent settlements racing for the same barcode.
func (r *VariantRepo) Create(ctx context.Context, v *entity.StockVariant) error {
	query := `
		INSERT INTO stock_variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.ItemID, v.Barcode, v.CurrentQuantity, v.CurrentCostPrice, v.CurrentSalePrice,
		v.AverageCostPrice, v.MinimumStockLevel, v.Status, v.LastUpdatedBy, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: variant barcode %s", domain.ErrConflict, v.Barcode)
		}
		return fmt.Errorf("insert stock variant: %w", err)
	}
	return nil
}

// GetByBarcode returns a variant, nil when absent.
func (r *VariantRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.StockVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM stock_variants WHERE barcode = $1`
	return r.getOne(ctx, query, barcode)
}

// GetByBarcodeForUpdate loads and row-locks a variant for a merge.
func (r *VariantRepo) GetByBarcodeForUpdate(ctx context.Context, barcode string) (*entity.StockVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM stock_variants WHERE barcode = $1 FOR UPDATE`
	return r.getOne(ctx, query, barcode)
}

func (r *VariantRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockVariant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock variant: %w", err)
	}
	return v, nil
}

// ListByItem returns every variant of an item, oldest first. Inside a
// transaction this observes rows written earlier in that transaction.
func (r *VariantRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM stock_variants WHERE item_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list variants by item: %w", err)
	}
	defer rows.Close()
	return collectVariants(rows)
}

// Update persists the mutable variant fields.
func (r *VariantRepo) Update(ctx context.Context, v *entity.StockVariant) error {
	query := `
		UPDATE stock_variants
		SET current_quantity = $2, current_cost_price = $3, current_sale_price = $4,
		    average_cost_price = $5, minimum_stock_level = $6, status = $7,
		    last_updated_by = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		v.ID, v.CurrentQuantity, v.CurrentCostPrice, v.CurrentSalePrice,
		v.AverageCostPrice, v.MinimumStockLevel, v.Status, v.LastUpdatedBy, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock variant %s", domain.ErrNotFound, v.ID)
	}
	return nil
}

// DecrementQuantity atomically subtracts qty when enough stock remains and
// rederives the status in the same statement. Zero rows affected means the
// variant is missing or short, never an error.
func (r *VariantRepo) DecrementQuantity(ctx context.Context, variantID string, qty int64, actor string) (bool, error) {
	query := `
		UPDATE stock_variants
		SET current_quantity = current_quantity - $2,
		    status = CASE
		        WHEN current_quantity - $2 <= 0 THEN 'out_of_stock'
		        WHEN current_quantity - $2 < minimum_stock_level THEN 'low'
		        ELSE 'available'
		    END,
		    last_updated_by = $3,
		    updated_at = $4
		WHERE id = $1 AND current_quantity >= $2`
	tag, err := r.q.Exec(ctx, query, variantID, qty, actor, time.Now())
	if err != nil {
		return false, fmt.Errorf("decrement stock variant: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List pages all variants.
func (r *VariantRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockVariant, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_variants`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count variants: %w", err)
	}
	query := `SELECT ` + variantColumns + ` FROM stock_variants ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	variants, err := collectVariants(rows)
	return variants, total, err
}

// ListLowStock returns variants flagged low or out of stock.
func (r *VariantRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.StockVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM stock_variants
		WHERE status IN ('low', 'out_of_stock')
		ORDER BY current_quantity LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectVariants(rows)
}

func scanVariant(row pgx.Row) (*entity.StockVariant, error) {
	var v entity.StockVariant
	err := row.Scan(
		&v.ID, &v.ItemID, &v.Barcode, &v.CurrentQuantity, &v.CurrentCostPrice, &v.CurrentSalePrice,
		&v.AverageCostPrice, &v.MinimumStockLevel, &v.Status, &v.LastUpdatedBy, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVariants(rows pgx.Rows) ([]*entity.StockVariant, error) {
	var variants []*entity.StockVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock variant: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
