package repository

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// CustomerRepository is the persistence port for loyalty customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	// GetByIDForUpdate locks the row for point debits/credits.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, c *entity.Customer) error
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, int, error)
}
