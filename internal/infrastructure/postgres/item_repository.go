package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implements ItemRepository over PostgreSQL (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the item adapter. Pass a pool or tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, barcode, weight_value, weight_unit, gst_percentage, discount_percent, image_url, created_by, created_at, updated_at`

// Create persists a new catalog item.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullIfEmpty(item.Barcode), item.WeightValue, item.WeightUnit,
		item.GSTPercentage, item.DiscountPercent, item.ImageURL, item.CreatedBy,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item barcode %s", domain.ErrConflict, item.Barcode)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID returns an item, nil when absent.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getBy(ctx, "id", id)
}

// GetByBarcode returns the item owning a primary barcode, nil when absent.
func (r *ItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error) {
	return r.getBy(ctx, "barcode", barcode)
}

func (r *ItemRepo) getBy(ctx context.Context, column, value string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE ` + column + ` = $1`
	item, err := scanItem(r.q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by %s: %w", column, err)
	}
	return item, nil
}

// Update persists the mutable item fields.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, barcode = $3, weight_value = $4, weight_unit = $5,
		    gst_percentage = $6, discount_percent = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullIfEmpty(item.Barcode), item.WeightValue, item.WeightUnit,
		item.GSTPercentage, item.DiscountPercent, item.ImageURL, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item barcode %s", domain.ErrConflict, item.Barcode)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, item.ID)
	}
	return nil
}

// List pages items, optionally filtered by a case-insensitive name substring.
// The filter always binds as $1 (empty matches everything) to keep one query.
func (r *ItemRepo) List(ctx context.Context, nameFilter string, limit, offset int) ([]*entity.Item, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM items WHERE name ILIKE '%' || $1 || '%'`
	if err := r.q.QueryRow(ctx, countQuery, nameFilter).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, nameFilter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// Delete removes a catalog item.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var item entity.Item
	var barcode *string
	err := row.Scan(
		&item.ID, &item.Name, &barcode, &item.WeightValue, &item.WeightUnit,
		&item.GSTPercentage, &item.DiscountPercent, &item.ImageURL, &item.CreatedBy,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Barcode = emptyIfNil(barcode)
	return &item, nil
}
