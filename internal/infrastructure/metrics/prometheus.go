package metrics

import (
	"time"

	"github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
)

var _ inventory.Metrics = (*InventoryMetrics)(nil)

// InventoryMetrics implementación Prometheus del puerto de métricas de inventario.
type InventoryMetrics struct {
	groupComputations *prometheus.CounterVec
	groupDuration     prometheus.Histogram
	adjustments       *prometheus.CounterVec
	averageUpdates    *prometheus.CounterVec
	unitStatus        *prometheus.CounterVec
}

// NewInventoryMetrics crea y registra los colectores en reg (prometheus.DefaultRegisterer en main).
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	m := &InventoryMetrics{
		groupComputations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_group_computations_total",
				Help: "Consultas de la vista agrupada, por acierto de cache",
			},
			[]string{"cache"},
		),
		groupDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "inventory_group_compute_duration_seconds",
				Help:    "Duración de la consulta agrupada (incluye lectura de cache)",
				Buckets: prometheus.DefBuckets,
			},
		),
		adjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_adjustments_total",
				Help: "Ajustes de stock por tipo y resultado",
			},
			[]string{"type", "result"},
		),
		averageUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_average_updates_total",
				Help: "Recálculos de precio promedio por resultado",
			},
			[]string{"result"},
		),
		unitStatus: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_unit_status_changes_total",
				Help: "Cambios de estado de unidades serializadas por estado destino",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.groupComputations, m.groupDuration, m.adjustments, m.averageUpdates, m.unitStatus)
	return m
}

func (m *InventoryMetrics) ObserveGrouping(cacheHit bool, elapsed time.Duration) {
	m.groupComputations.WithLabelValues(cacheLabel(cacheHit)).Inc()
	m.groupDuration.Observe(elapsed.Seconds())
}

func (m *InventoryMetrics) AdjustmentApplied(movementType, result string) {
	m.adjustments.WithLabelValues(typeLabel(movementType), result).Inc()
}

func (m *InventoryMetrics) AverageUpdated(result string) {
	m.averageUpdates.WithLabelValues(result).Inc()
}

func (m *InventoryMetrics) UnitStatusChanged(status string) {
	m.unitStatus.WithLabelValues(status).Inc()
}

// typeLabel acota la cardinalidad: el tipo llega sin validar desde el request.
func typeLabel(t string) string {
	switch t {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeAdjustment:
		return t
	}
	return "invalid"
}

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
