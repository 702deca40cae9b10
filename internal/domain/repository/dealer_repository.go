package repository

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// DealerRepository is the persistence port for dealers (suppliers).
type DealerRepository interface {
	Create(ctx context.Context, d *entity.Dealer) error
	GetByID(ctx context.Context, id string) (*entity.Dealer, error)
	Update(ctx context.Context, d *entity.Dealer) error
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Dealer, int, error)
	// Deactivate soft-deletes the dealer.
	Deactivate(ctx context.Context, id string) error
}
