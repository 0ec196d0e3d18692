package postgres

import (
	"context"
	"fmt"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/mercadodovale/estoque-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo historial de promedios por variación. Los promedios son NUMERIC(14,2)
// y se leen como decimal.Decimal gracias al codec registrado en NewPool.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create persiste una fila de historial.
func (r *PriceHistoryRepo) Create(ctx context.Context, h *entity.PriceHistory) error {
	query := `
		INSERT INTO price_history (id, model_id, ram, storage, previous_stock, entry_quantity, new_stock,
			avg_cost, avg_retail, avg_reseller, avg_wholesale, updated_records, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.Variation.ModelID, h.Variation.RAM, h.Variation.Storage,
		h.PreviousStock, h.EntryQuantity, h.NewStock,
		h.AvgCost, h.AvgRetail, h.AvgReseller, h.AvgWholesale,
		h.UpdatedRecords, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

// ListByVariation devuelve las últimas filas de una variación, más reciente primero.
func (r *PriceHistoryRepo) ListByVariation(ctx context.Context, key entity.VariationKey, limit int) ([]*entity.PriceHistory, error) {
	query := `
		SELECT id, model_id, ram, storage, previous_stock, entry_quantity, new_stock,
			avg_cost, avg_retail, avg_reseller, avg_wholesale, updated_records, created_at
		FROM price_history
		WHERE model_id = $1 AND ram = $2 AND storage = $3
		ORDER BY created_at DESC, id DESC LIMIT $4`
	rows, err := r.q.Query(ctx, query, key.ModelID, key.RAM, key.Storage, limit)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.PriceHistory, 0)
	for rows.Next() {
		var h entity.PriceHistory
		if err := rows.Scan(&h.ID, &h.Variation.ModelID, &h.Variation.RAM, &h.Variation.Storage,
			&h.PreviousStock, &h.EntryQuantity, &h.NewStock,
			&h.AvgCost, &h.AvgRetail, &h.AvgReseller, &h.AvgWholesale,
			&h.UpdatedRecords, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
