package repository

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// PurchaseOrderRepository is the persistence port for dealer purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, int, error)
}
