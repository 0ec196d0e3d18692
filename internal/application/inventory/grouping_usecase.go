package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	dominv "github.com/mercadodovale/estoque-api/internal/domain/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// GroupingUseCase arma la vista agrupada y las estadísticas del inventario.
// Solo lee: es seguro ejecutarlo en paralelo con ajustes y promedios (puede ver un snapshot viejo).
type GroupingUseCase struct {
	productRepo repository.ProductRepository
	cache       GroupCache
	metrics     Metrics
	log         zerolog.Logger
}

// NewGroupingUseCase construye el caso de uso. cache y metrics pueden ser nil.
func NewGroupingUseCase(
	productRepo repository.ProductRepository,
	cache GroupCache,
	metrics Metrics,
	log zerolog.Logger,
) *GroupingUseCase {
	if cache == nil {
		cache = NopCache{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &GroupingUseCase{productRepo: productRepo, cache: cache, metrics: metrics, log: log}
}

// ListGroups devuelve los grupos de inventario para los filtros dados.
func (uc *GroupingUseCase) ListGroups(ctx context.Context, f dominv.GroupFilters) ([]entity.InventoryGroup, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	key := cacheKey("groups", f)

	var groups []entity.InventoryGroup
	gen, hit, cacheable := uc.fromCache(ctx, key, &groups)
	if hit {
		uc.metrics.ObserveGrouping(true, time.Since(start))
		return groups, nil
	}

	records, err := uc.productRepo.ListActive(ctx, recordQuery(f))
	if err != nil {
		return nil, err
	}
	groups = dominv.ComputeGroups(records, f)
	if cacheable {
		uc.toCache(ctx, key, gen, groups)
	}
	uc.metrics.ObserveGrouping(false, time.Since(start))
	return groups, nil
}

// Stats calcula el resumen sobre los registros que pasan los filtros de registro
// (búsqueda, categoría, marca, estado). Los post-filtros y el orden no aplican.
func (uc *GroupingUseCase) Stats(ctx context.Context, f dominv.GroupFilters) (entity.InventoryStats, error) {
	if err := f.Validate(); err != nil {
		return entity.InventoryStats{}, err
	}
	f = dominv.GroupFilters{Search: f.Search, CategoryID: f.CategoryID, Brand: f.Brand, Status: f.Status}
	key := cacheKey("stats", f)

	var st entity.InventoryStats
	gen, hit, cacheable := uc.fromCache(ctx, key, &st)
	if hit {
		return st, nil
	}
	records, err := uc.productRepo.ListActive(ctx, recordQuery(f))
	if err != nil {
		return entity.InventoryStats{}, err
	}
	st = dominv.ComputeStats(dominv.FilterRecords(records, f))
	if cacheable {
		uc.toCache(ctx, key, gen, st)
	}
	return st, nil
}

// fromCache devuelve la generación leída, si hubo acierto y si el resultado puede guardarse.
// Sin generación conocida (error de lectura) no se escribe.
func (uc *GroupingUseCase) fromCache(ctx context.Context, key string, dst any) (gen int64, hit, cacheable bool) {
	raw, gen, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("cache_key", key).Msg("lectura de cache de inventario")
		return 0, false, false
	}
	if !ok {
		return gen, false, true
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		uc.log.Warn().Err(err).Str("cache_key", key).Msg("entrada de cache inválida")
		return gen, false, true
	}
	return gen, true, true
}

func (uc *GroupingUseCase) toCache(ctx context.Context, key string, gen int64, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, gen, raw); err != nil {
		uc.log.Warn().Err(err).Str("cache_key", key).Msg("escritura de cache de inventario")
	}
}

// cacheKey clave lógica: tipo + filtros serializados (orden de campos estable).
func cacheKey(kind string, f dominv.GroupFilters) string {
	raw, _ := json.Marshal(f)
	return kind + ":" + string(raw)
}

func recordQuery(f dominv.GroupFilters) repository.RecordQuery {
	return repository.RecordQuery{CategoryID: f.CategoryID, Brand: f.Brand, UnitStatus: f.Status}
}

// invalidateGroups descarta la cache después de una mutación; un fallo solo se registra.
func invalidateGroups(ctx context.Context, cache GroupCache, log zerolog.Logger) {
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidar cache de inventario")
	}
}
