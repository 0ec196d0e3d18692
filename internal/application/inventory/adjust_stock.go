package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	dominv "github.com/mercadodovale/estoque-api/internal/domain/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// AdjustmentInput entrada para ajustar el stock de un registro no serializado.
type AdjustmentInput struct {
	ProductID   string
	Type        string // in, out, adjustment
	Quantity    int
	Reason      string
	Notes       string
	ReferenceID string
	UserID      string
}

// AdjustStockUseCase aplica ajustes de stock con su movimiento de ledger en una sola transacción
// (SELECT FOR UPDATE sobre el registro, UPDATE de cantidad, INSERT del movimiento, Commit/Rollback).
type AdjustStockUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	cache    GroupCache
	metrics  Metrics
	log      zerolog.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	cache GroupCache,
	metrics Metrics,
	log zerolog.Logger,
) *AdjustStockUseCase {
	if cache == nil {
		cache = NopCache{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &AdjustStockUseCase{txRunner: txRunner, movRepo: movRepo, cache: cache, metrics: metrics, log: log}
}

// AdjustStock valida la entrada antes de tocar nada, bloquea el registro, calcula la nueva cantidad
// y persiste cantidad + movimiento. Si el INSERT del movimiento falla, el Rollback deja la cantidad
// como estaba: todo cambio de stock tiene exactamente un movimiento.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustmentInput) (*entity.StockMovement, error) {
	if err := validateAdjustment(in); err != nil {
		uc.metrics.AdjustmentApplied(in.Type, resultError)
		return nil, err
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository, _ repository.PriceHistoryRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if err := dominv.CheckTrackable(product); err != nil {
			return err
		}
		previous := product.StockQuantity
		next, err := dominv.ApplyAdjustment(previous, in.Type, in.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStockQuantity(ctx, product.ID, next); err != nil {
			return err
		}
		mov = &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			Type:             in.Type,
			Quantity:         in.Quantity,
			PreviousQuantity: previous,
			NewQuantity:      next,
			Reason:           in.Reason,
			Notes:            in.Notes,
			ReferenceID:      in.ReferenceID,
			CreatedBy:        in.UserID,
			CreatedAt:        time.Now(),
		}
		return movRepo.Create(ctx, mov)
	})
	uc.metrics.AdjustmentApplied(in.Type, resultOf(err))
	if err != nil {
		return nil, err
	}

	invalidateGroups(ctx, uc.cache, uc.log)
	uc.log.Info().
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int("previous_quantity", mov.PreviousQuantity).
		Int("new_quantity", mov.NewQuantity).
		Str("reason", mov.Reason).
		Msg("ajuste de stock aplicado")
	return mov, nil
}

// ListMovements lista el ledger de un producto, más reciente primero.
func (uc *AdjustStockUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(ctx, productID, limit, offset)
}

func validateAdjustment(in AdjustmentInput) error {
	if strings.TrimSpace(in.ProductID) == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidMovementReason(in.Reason) {
		return domain.ErrInvalidInput
	}
	_, err := dominv.ApplyAdjustment(0, in.Type, in.Quantity)
	return err
}
