package repository

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// SaleRepository is the persistence port for sales.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetByIDForUpdate locks the sale row so concurrent settlements of the same
	// sale serialize on the status check.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, s *entity.Sale) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Sale, int, error)
}
