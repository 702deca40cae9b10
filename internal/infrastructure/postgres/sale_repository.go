package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements SaleRepository over PostgreSQL (usable with pool or tx).
// Payment details live in a JSONB column; sale lines in their own table.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the sale adapter. Pass a pool or tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, date, customer_id, subtotal, tax_amount, discount_amount, additional_discount, points_discount, loyalty_points_used, total, status, payment_method, payment_details, counter_number, invoice_number, created_by, completed_at, created_at, updated_at`

// Create persists the sale header and its lines.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	details, err := json.Marshal(s.PaymentDetails)
	if err != nil {
		return fmt.Errorf("marshal payment details: %w", err)
	}
	headerQuery := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, headerQuery,
		s.ID, s.Date, nullIfEmpty(s.CustomerID), s.Subtotal, s.TaxAmount, s.DiscountAmount,
		s.AdditionalDiscount, s.PointsDiscount, s.LoyaltyPointsUsed, s.Total, s.Status,
		nullIfEmpty(s.PaymentMethod), details, s.CounterNumber, nullIfEmpty(s.InvoiceNumber),
		s.CreatedBy, s.CompletedAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", domain.ErrConflict, s.InvoiceNumber)
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	lineQuery := `
		INSERT INTO sale_items (id, sale_id, item_id, legacy_item_id, name, barcode, quantity, price, gst_percentage, tax_amount, discount_percent, discount_amount, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for i := range s.Items {
		it := &s.Items[i]
		_, err := r.q.Exec(ctx, lineQuery,
			it.ID, s.ID, it.ItemID, nullIfEmpty(it.LegacyItemID), it.Name, it.Barcode, it.Quantity,
			it.Price, it.GSTPercentage, it.TaxAmount, it.DiscountPercent, it.DiscountAmount, it.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID returns one sale with its lines, nil when absent.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate loads and row-locks a sale so concurrent settlements
// serialize on the status check.
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update persists the settlement outcome on the header. Sale lines are
// immutable once written.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	details, err := json.Marshal(s.PaymentDetails)
	if err != nil {
		return fmt.Errorf("marshal payment details: %w", err)
	}
	query := `
		UPDATE sales
		SET customer_id = $2, additional_discount = $3, points_discount = $4, loyalty_points_used = $5,
		    total = $6, status = $7, payment_method = $8, payment_details = $9,
		    invoice_number = $10, completed_at = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, nullIfEmpty(s.CustomerID), s.AdditionalDiscount, s.PointsDiscount, s.LoyaltyPointsUsed,
		s.Total, s.Status, nullIfEmpty(s.PaymentMethod), details,
		nullIfEmpty(s.InvoiceNumber), s.CompletedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", domain.ErrConflict, s.InvoiceNumber)
		}
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", domain.ErrNotFound, s.ID)
	}
	return nil
}

// List pages sales newest first, optionally filtered by status.
func (r *SaleRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Sale, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM sales WHERE ($1 = '' OR status = $1)`
	if err := r.q.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE ($1 = '' OR status = $1)
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, s := range sales {
		if err := r.loadItems(ctx, s); err != nil {
			return nil, 0, err
		}
	}
	return sales, total, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, s *entity.Sale) error {
	query := `
		SELECT id, item_id, legacy_item_id, name, barcode, quantity, price, gst_percentage, tax_amount, discount_percent, discount_amount, total_price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, s.ID)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.SaleItem
		var legacyID *string
		if err := rows.Scan(&it.ID, &it.ItemID, &legacyID, &it.Name, &it.Barcode, &it.Quantity,
			&it.Price, &it.GSTPercentage, &it.TaxAmount, &it.DiscountPercent, &it.DiscountAmount, &it.TotalPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		it.LegacyItemID = emptyIfNil(legacyID)
		s.Items = append(s.Items, it)
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, paymentMethod, invoiceNumber *string
	var details []byte
	err := row.Scan(
		&s.ID, &s.Date, &customerID, &s.Subtotal, &s.TaxAmount, &s.DiscountAmount,
		&s.AdditionalDiscount, &s.PointsDiscount, &s.LoyaltyPointsUsed, &s.Total, &s.Status,
		&paymentMethod, &details, &s.CounterNumber, &invoiceNumber,
		&s.CreatedBy, &s.CompletedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CustomerID = emptyIfNil(customerID)
	s.PaymentMethod = emptyIfNil(paymentMethod)
	s.InvoiceNumber = emptyIfNil(invoiceNumber)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &s.PaymentDetails); err != nil {
			return nil, fmt.Errorf("unmarshal payment details: %w", err)
		}
	}
	return &s, nil
}
