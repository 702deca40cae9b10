package repository

import "context"

// CounterRepository hands out monotonic sequence values by name. Backs batch,
// invoice and PO number generation; randomized identifiers cannot guarantee
// the uniqueness invariants.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
