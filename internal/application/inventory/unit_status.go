package inventory

import (
	"context"

	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/mercadodovale/estoque-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UnitStatusUseCase transiciones de estado de unidades serializadas (vendida, devuelta, etc.).
type UnitStatusUseCase struct {
	txRunner TxRunner
	cache    GroupCache
	metrics  Metrics
	log      zerolog.Logger
}

// NewUnitStatusUseCase construye el caso de uso.
func NewUnitStatusUseCase(txRunner TxRunner, cache GroupCache, metrics Metrics, log zerolog.Logger) *UnitStatusUseCase {
	if cache == nil {
		cache = NopCache{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &UnitStatusUseCase{txRunner: txRunner, cache: cache, metrics: metrics, log: log}
}

// ChangeUnitStatus mueve una unidad serializada al estado indicado.
func (uc *UnitStatusUseCase) ChangeUnitStatus(ctx context.Context, productID, status string) (*entity.ProductRecord, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidUnitStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	var product *entity.ProductRecord
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository, _ repository.PriceHistoryRepository) error {
		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !p.IsSerialized() {
			return domain.ErrNotSerialized
		}
		if err := productRepo.UpdateUnitStatus(ctx, p.ID, status); err != nil {
			return err
		}
		p.UnitStatus = status
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.UnitStatusChanged(status)
	invalidateGroups(ctx, uc.cache, uc.log)
	uc.log.Info().Str("product_id", productID).Str("unit_status", status).Msg("estado de unidad actualizado")
	return product, nil
}
