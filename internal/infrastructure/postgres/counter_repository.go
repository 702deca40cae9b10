package postgres

import (
	"context"
	"fmt"

	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo hands out named monotonic sequences from a single-row-per-name
// counters table. Run inside the same transaction as the write that consumes
// the value so gaps only appear on rollback.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository builds the sequence adapter.
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next returns the next value for a named sequence, creating it at 1.
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("next counter %s: %w", name, err)
	}
	return value, nil
}
