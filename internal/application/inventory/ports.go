package inventory

import (
	"context"
	"time"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/mercadodovale/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cubre en un solo commit la actualización de stock/precios y el registro en el ledger/historial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		historyRepo repository.PriceHistoryRepository,
	) error) error
}

// GroupCache cache inyectable de resultados de agrupación. TTL y espacio de claves
// los define el adaptador; Invalidate descarta todas las entradas vigentes.
// Get devuelve también la generación leída y Set escribe en esa generación: un cálculo
// que empezó antes de un Invalidate no queda visible después de él.
type GroupCache interface {
	Get(ctx context.Context, key string) (value []byte, gen int64, ok bool, err error)
	Set(ctx context.Context, key string, gen int64, value []byte) error
	Invalidate(ctx context.Context) error
}

// Metrics puerto de métricas del motor de inventario.
type Metrics interface {
	ObserveGrouping(cacheHit bool, elapsed time.Duration)
	AdjustmentApplied(movementType, result string)
	AverageUpdated(result string)
	UnitStatusChanged(status string)
}

// InventoryReportGenerator genera la representación PDF del inventario.
type InventoryReportGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report InventoryReport) ([]byte, error)
}

// InventoryReport datos que consume el generador de PDF.
type InventoryReport struct {
	Title       string
	GeneratedAt time.Time
	Stats       entity.InventoryStats
	Groups      []entity.InventoryGroup
}

// NopCache cache deshabilitada (sin REDIS_URL).
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, int64, bool, error) { return nil, 0, false, nil }
func (NopCache) Set(context.Context, string, int64, []byte) error         { return nil }
func (NopCache) Invalidate(context.Context) error                         { return nil }

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) ObserveGrouping(bool, time.Duration) {}
func (NopMetrics) AdjustmentApplied(string, string)    {}
func (NopMetrics) AverageUpdated(string)               {}
func (NopMetrics) UnitStatusChanged(string)            {}

// Resultados para métricas.
const (
	resultOK    = "ok"
	resultError = "error"
	resultSkip  = "skipped"
)

func resultOf(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}
