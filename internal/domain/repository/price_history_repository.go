package repository

import (
	"context"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
)

// PriceHistoryRepository historial de promedios por variación.
type PriceHistoryRepository interface {
	Create(ctx context.Context, h *entity.PriceHistory) error
	ListByVariation(ctx context.Context, key entity.VariationKey, limit int) ([]*entity.PriceHistory, error)
}
