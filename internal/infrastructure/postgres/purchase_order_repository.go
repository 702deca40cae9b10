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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implements PurchaseOrderRepository over PostgreSQL
// (usable with pool or tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository builds the purchase-order adapter. Pass a pool or tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persists the order header and its lines.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	headerQuery := `
		INSERT INTO purchase_orders (id, po_number, dealer_id, order_date, expected_delivery_date, status,
			payment_terms, subtotal, tax_amount, discount_amount, total_amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, headerQuery,
		po.ID, po.PONumber, po.DealerID, po.OrderDate, po.ExpectedDeliveryDate, po.Status,
		po.PaymentTerms, po.Subtotal, po.TaxAmount, po.DiscountAmount, po.TotalAmount,
		po.Notes, po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase order %s", domain.ErrConflict, po.PONumber)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	lineQuery := `
		INSERT INTO purchase_order_items (id, purchase_order_id, item_id, item_name, barcode, quantity, unit_price, gst_percentage, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range po.Items {
		it := &po.Items[i]
		_, err := r.q.Exec(ctx, lineQuery,
			it.ID, po.ID, it.ItemID, it.ItemName, it.Barcode, it.Quantity, it.UnitPrice, it.GSTPercentage, it.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

const poColumns = `id, po_number, dealer_id, order_date, expected_delivery_date, status, payment_terms, subtotal, tax_amount, discount_amount, total_amount, notes, created_by, created_at, updated_at`

// GetByID returns one order with its lines, nil when absent.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// List pages orders newest first, optionally filtered by status.
func (r *PurchaseOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM purchase_orders WHERE ($1 = '' OR status = $1)`
	if err := r.q.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query := `SELECT ` + poColumns + ` FROM purchase_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, po)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, po := range orders {
		if err := r.loadItems(ctx, po); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		SELECT id, item_id, item_name, barcode, quantity, unit_price, gst_percentage, total_price
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, po.ID)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.ItemID, &it.ItemName, &it.Barcode, &it.Quantity, &it.UnitPrice, &it.GSTPercentage, &it.TotalPrice); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	return rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var notes *string
	err := row.Scan(
		&po.ID, &po.PONumber, &po.DealerID, &po.OrderDate, &po.ExpectedDeliveryDate, &po.Status,
		&po.PaymentTerms, &po.Subtotal, &po.TaxAmount, &po.DiscountAmount, &po.TotalAmount,
		&notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	po.Notes = emptyIfNil(notes)
	return &po, nil
}
