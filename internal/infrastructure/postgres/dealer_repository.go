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

var _ repository.DealerRepository = (*DealerRepo)(nil)

// DealerRepo implements DealerRepository over PostgreSQL.
type DealerRepo struct {
	q Querier
}

// NewDealerRepository builds the dealer adapter.
func NewDealerRepository(q Querier) *DealerRepo {
	return &DealerRepo{q: q}
}

const dealerColumns = `id, name, contact_person, phone, email, address, city, state, pincode,
	gst_number, supply_categories, is_active, notes, last_order_date, last_order_amount,
	outstanding_amount, created_at, updated_at`

// Create persists a new dealer.
func (r *DealerRepo) Create(ctx context.Context, d *entity.Dealer) error {
	query := `
		INSERT INTO dealers (` + dealerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Name, nullIfEmpty(d.ContactPerson), d.Phone, nullIfEmpty(d.Email),
		nullIfEmpty(d.Address), nullIfEmpty(d.City), nullIfEmpty(d.State), nullIfEmpty(d.Pincode),
		nullIfEmpty(d.GSTNumber), d.SupplyCategories, d.IsActive, nullIfEmpty(d.Notes),
		d.LastOrderDate, d.LastOrderAmount, d.OutstandingAmount, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: dealer phone %s", domain.ErrConflict, d.Phone)
		}
		return fmt.Errorf("insert dealer: %w", err)
	}
	return nil
}

// GetByID returns a dealer, nil when absent.
func (r *DealerRepo) GetByID(ctx context.Context, id string) (*entity.Dealer, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealers WHERE id = $1`
	d, err := scanDealer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dealer: %w", err)
	}
	return d, nil
}

// Update persists the mutable dealer fields.
func (r *DealerRepo) Update(ctx context.Context, d *entity.Dealer) error {
	query := `
		UPDATE dealers
		SET name = $2, contact_person = $3, phone = $4, email = $5, address = $6,
		    city = $7, state = $8, pincode = $9, gst_number = $10, supply_categories = $11,
		    is_active = $12, notes = $13, last_order_date = $14, last_order_amount = $15,
		    outstanding_amount = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.Name, nullIfEmpty(d.ContactPerson), d.Phone, nullIfEmpty(d.Email),
		nullIfEmpty(d.Address), nullIfEmpty(d.City), nullIfEmpty(d.State), nullIfEmpty(d.Pincode),
		nullIfEmpty(d.GSTNumber), d.SupplyCategories, d.IsActive, nullIfEmpty(d.Notes),
		d.LastOrderDate, d.LastOrderAmount, d.OutstandingAmount, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dealer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: dealer %s", domain.ErrNotFound, d.ID)
	}
	return nil
}

// ListActive pages dealers that have not been deactivated.
func (r *DealerRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Dealer, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM dealers WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count dealers: %w", err)
	}

	query := `SELECT ` + dealerColumns + ` FROM dealers
		WHERE is_active ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list dealers: %w", err)
	}
	defer rows.Close()

	var dealers []*entity.Dealer
	for rows.Next() {
		d, err := scanDealer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan dealer: %w", err)
		}
		dealers = append(dealers, d)
	}
	return dealers, total, rows.Err()
}

// Deactivate soft-deletes a dealer so historical purchase orders keep their reference.
func (r *DealerRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE dealers SET is_active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate dealer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: dealer %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanDealer(row pgx.Row) (*entity.Dealer, error) {
	var d entity.Dealer
	var contactPerson, email, address, city, state, pincode, gstNumber, notes *string
	err := row.Scan(
		&d.ID, &d.Name, &contactPerson, &d.Phone, &email, &address, &city, &state, &pincode,
		&gstNumber, &d.SupplyCategories, &d.IsActive, &notes, &d.LastOrderDate,
		&d.LastOrderAmount, &d.OutstandingAmount, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.ContactPerson = emptyIfNil(contactPerson)
	d.Email = emptyIfNil(email)
	d.Address = emptyIfNil(address)
	d.City = emptyIfNil(city)
	d.State = emptyIfNil(state)
	d.Pincode = emptyIfNil(pincode)
	d.GSTNumber = emptyIfNil(gstNumber)
	d.Notes = emptyIfNil(notes)
	return &d, nil
}
