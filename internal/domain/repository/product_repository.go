package repository

import (
	"context"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
)

// RecordQuery filtros que el adaptador puede empujar al WHERE. Vacío = sin filtro.
type RecordQuery struct {
	CategoryID string
	Brand      string
	UnitStatus string
}

// ProductRepository define el puerto de persistencia para ProductRecord (DIP).
// Solo lista registros con status active; el core nunca borra filas.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.ProductRecord) error
	GetByID(ctx context.Context, id string) (*entity.ProductRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductRecord, error)
	ListActive(ctx context.Context, q RecordQuery) ([]entity.ProductRecord, error)
	// ListActiveByVariation devuelve los registros activos con el mismo (model_id, ram, storage).
	// forUpdate bloquea las filas encontradas.
	ListActiveByVariation(ctx context.Context, key entity.VariationKey, forUpdate bool) ([]entity.ProductRecord, error)
	// LockVariation serializa las escrituras de una variación hasta el fin de la tx,
	// incluso cuando todavía no existe ninguna fila.
	LockVariation(ctx context.Context, key entity.VariationKey) error
	UpdateStockQuantity(ctx context.Context, id string, quantity int) error
	// UpdatePrices sobrescribe los cuatro precios de todos los ids en un solo UPDATE.
	UpdatePrices(ctx context.Context, ids []string, prices entity.Prices) error
	UpdateUnitStatus(ctx context.Context, id, status string) error
}
