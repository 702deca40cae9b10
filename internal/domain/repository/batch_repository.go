package repository

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// BatchRepository is the persistence port for the append-only batch ledger.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	ListActiveByVariant(ctx context.Context, variantID string) ([]*entity.Batch, error)
	ListActiveByItem(ctx context.Context, itemID string) ([]*entity.Batch, error)
	// UpdateDepletion persists the only mutable batch fields.
	UpdateDepletion(ctx context.Context, batchID string, remainingQuantity int64, isActive bool) error
}
