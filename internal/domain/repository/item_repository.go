package repository

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// ItemRepository is the persistence port for catalog items.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	List(ctx context.Context, nameFilter string, limit, offset int) ([]*entity.Item, int, error)
	Delete(ctx context.Context, id string) error
}
