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

// StockEntryInput entrada de stock para una variación (modelo × RAM × almacenamiento).
// StockQuantity nil o 0 cuenta como 1 unidad.
type StockEntryInput struct {
	ModelID       string
	RAM           string
	Storage       string
	StockQuantity *int
	Prices        entity.Prices
}

// AverageResult resultado del recálculo de promedios.
type AverageResult struct {
	Variation      entity.VariationKey
	PreviousStock  int
	NewStock       int
	Previous       dominv.PriceAverages
	Averages       dominv.PriceAverages
	UpdatedRecords int
}

// NewRecordInput alta de un registro de producto con su entrada de stock.
type NewRecordInput struct {
	ModelID        string
	CategoryID     string
	Name           string
	SKU            string
	Brand          string
	Model          string
	Specs          entity.Specs
	StockQuantity  *int
	TrackInventory bool
	Prices         entity.Prices
	Notes          string
}

// PricingUseCase mantiene el costo/precio promedio ponderado por variación.
// No reintenta: repetir una entrada la contaría dos veces en el promedio.
type PricingUseCase struct {
	txRunner    TxRunner
	historyRepo repository.PriceHistoryRepository
	cache       GroupCache
	metrics     Metrics
	log         zerolog.Logger
}

// NewPricingUseCase construye el caso de uso.
func NewPricingUseCase(
	txRunner TxRunner,
	historyRepo repository.PriceHistoryRepository,
	cache GroupCache,
	metrics Metrics,
	log zerolog.Logger,
) *PricingUseCase {
	if cache == nil {
		cache = NopCache{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &PricingUseCase{txRunner: txRunner, historyRepo: historyRepo, cache: cache, metrics: metrics, log: log}
}

// UpdateAveragePrices recalcula los promedios ponderados de la variación de la entrada y los
// escribe en todos los registros activos de esa variación, en una sola transacción con lock por
// variación. Devuelve (nil, nil) si la entrada no trae model_id, ram y storage.
func (uc *PricingUseCase) UpdateAveragePrices(ctx context.Context, in StockEntryInput) (*AverageResult, error) {
	key := entity.VariationKey{ModelID: in.ModelID, RAM: in.RAM, Storage: in.Storage}
	if !key.Complete() {
		uc.metrics.AverageUpdated(resultSkip)
		return nil, nil
	}
	if err := validateEntry(in); err != nil {
		return nil, err
	}

	var res *AverageResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository, historyRepo repository.PriceHistoryRepository) error {
		var err error
		res, err = applyAverages(ctx, productRepo, historyRepo, key, in)
		return err
	})
	uc.metrics.AverageUpdated(resultOf(err))
	if err != nil {
		return nil, err
	}
	invalidateGroups(ctx, uc.cache, uc.log)
	uc.logAverages(res)
	return res, nil
}

// RegisterStockEntry da de alta un registro y, si tiene variación completa, recalcula el promedio
// en la misma transacción. Con hermanos existentes el nuevo registro nace con los promedios;
// en una variación nueva conserva sus propios precios.
func (uc *PricingUseCase) RegisterStockEntry(ctx context.Context, in NewRecordInput) (*entity.ProductRecord, *AverageResult, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	entry := StockEntryInput{
		ModelID:       in.ModelID,
		RAM:           in.Specs.RAM,
		Storage:       in.Specs.Storage,
		StockQuantity: in.StockQuantity,
		Prices:        in.Prices,
	}
	if err := validateEntry(entry); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	record := &entity.ProductRecord{
		ID:             uuid.New().String(),
		ModelID:        in.ModelID,
		CategoryID:     in.CategoryID,
		Name:           strings.TrimSpace(in.Name),
		SKU:            in.SKU,
		Brand:          in.Brand,
		Model:          in.Model,
		Specs:          in.Specs,
		Status:         entity.ProductStatusActive,
		StockQuantity:  entryQuantity(in.StockQuantity),
		TrackInventory: in.TrackInventory,
		Prices:         in.Prices,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if record.IsSerialized() {
		if record.StockQuantity != 1 {
			return nil, nil, domain.ErrInvalidQuantity
		}
		record.UnitStatus = entity.UnitStatusAvailable
		record.TrackInventory = false
	}

	key := record.Variation()
	var res *AverageResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository, historyRepo repository.PriceHistoryRepository) error {
		if key.Complete() {
			var err error
			res, err = applyAverages(ctx, productRepo, historyRepo, key, entry)
			if err != nil {
				return err
			}
			if res.UpdatedRecords > 0 {
				record.Prices = res.Averages.ToPrices()
			}
		}
		return productRepo.Create(ctx, record)
	})
	if key.Complete() {
		uc.metrics.AverageUpdated(resultOf(err))
	}
	if err != nil {
		return nil, nil, err
	}
	invalidateGroups(ctx, uc.cache, uc.log)
	uc.log.Info().
		Str("product_id", record.ID).
		Bool("serialized", record.IsSerialized()).
		Int("stock_quantity", record.StockQuantity).
		Msg("entrada de stock registrada")
	if res != nil {
		uc.logAverages(res)
	}
	return record, res, nil
}

// applyAverages corre dentro de la tx: lock de variación, lectura FOR UPDATE de los hermanos,
// cálculo, UPDATE en lote y fila de historial. Un error aborta toda la tx (no queda promedio parcial).
func applyAverages(
	ctx context.Context,
	productRepo repository.ProductRepository,
	historyRepo repository.PriceHistoryRepository,
	key entity.VariationKey,
	in StockEntryInput,
) (*AverageResult, error) {
	if err := productRepo.LockVariation(ctx, key); err != nil {
		return nil, err
	}
	siblings, err := productRepo.ListActiveByVariation(ctx, key, true)
	if err != nil {
		return nil, err
	}
	totalStock, current := dominv.CurrentAverages(siblings)
	qty := entryQuantity(in.StockQuantity)
	next := dominv.BlendAverages(totalStock, current, qty, in.Prices)

	if len(siblings) > 0 {
		ids := make([]string, 0, len(siblings))
		for _, s := range siblings {
			ids = append(ids, s.ID)
		}
		if err := productRepo.UpdatePrices(ctx, ids, next.ToPrices()); err != nil {
			return nil, err
		}
	}
	err = historyRepo.Create(ctx, &entity.PriceHistory{
		ID:             uuid.New().String(),
		Variation:      key,
		PreviousStock:  totalStock,
		EntryQuantity:  qty,
		NewStock:       totalStock + qty,
		AvgCost:        next.Cost,
		AvgRetail:      next.Retail,
		AvgReseller:    next.Reseller,
		AvgWholesale:   next.Wholesale,
		UpdatedRecords: len(siblings),
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return &AverageResult{
		Variation:      key,
		PreviousStock:  totalStock,
		NewStock:       totalStock + qty,
		Previous:       current,
		Averages:       next,
		UpdatedRecords: len(siblings),
	}, nil
}

// ListPriceHistory devuelve los últimos recálculos de una variación, más reciente primero.
func (uc *PricingUseCase) ListPriceHistory(ctx context.Context, key entity.VariationKey, limit int) ([]*entity.PriceHistory, error) {
	if !key.Complete() {
		return nil, domain.ErrMissingVariation
	}
	return uc.historyRepo.ListByVariation(ctx, key, limit)
}

func (uc *PricingUseCase) logAverages(res *AverageResult) {
	uc.log.Info().
		Str("variation", res.Variation.String()).
		Int("previous_stock", res.PreviousStock).
		Int("new_stock", res.NewStock).
		Int("updated_records", res.UpdatedRecords).
		Str("avg_cost", res.Averages.Cost.StringFixed(2)).
		Msg("precios promedio actualizados")
}

// entryQuantity aplica el default histórico de 1 unidad cuando no viene cantidad.
func entryQuantity(q *int) int {
	if q == nil || *q == 0 {
		return 1
	}
	return *q
}

func validateEntry(in StockEntryInput) error {
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return domain.ErrInvalidQuantity
	}
	p := in.Prices
	if p.Cost < 0 || p.Retail < 0 || p.Reseller < 0 || p.Wholesale < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
