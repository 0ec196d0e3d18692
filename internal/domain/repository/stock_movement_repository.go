package repository

import (
	"context"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del ledger de movimientos (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
