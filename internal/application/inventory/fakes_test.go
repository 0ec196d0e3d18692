package inventory_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	appinv "github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/mercadodovale/estoque-api/internal/domain/repository"
)

var errStore = errors.New("falla simulada del store")

// memStore persistencia en memoria con la semántica mínima de los adaptadores postgres.
type memStore struct {
	mu        sync.Mutex
	order     []string
	products  map[string]entity.ProductRecord
	movements []*entity.StockMovement
	history   []*entity.PriceHistory

	failMovementInsert bool
	failUpdatePrices   bool
	failList           bool
	onList             func() // corre después de leer, antes de devolver los registros
	updatePricesCalls  int
	lockedVariations   []string
}

func newMemStore(records ...entity.ProductRecord) *memStore {
	s := &memStore{products: make(map[string]entity.ProductRecord)}
	for _, r := range records {
		if r.Status == "" {
			r.Status = entity.ProductStatusActive
		}
		s.order = append(s.order, r.ID)
		s.products[r.ID] = r
	}
	return s
}

func (s *memStore) get(id string) entity.ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

// memTx ejecuta fn y, si falla, restaura el snapshot previo (emula Rollback).
type memTx struct {
	store *memStore
	runs  int
}

func (t *memTx) Run(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.StockMovementRepository,
	repository.PriceHistoryRepository,
) error) error {
	t.runs++
	s := t.store
	s.mu.Lock()
	snapshot := make(map[string]entity.ProductRecord, len(s.products))
	for k, v := range s.products {
		snapshot[k] = v
	}
	order := append([]string(nil), s.order...)
	movs := append([]*entity.StockMovement(nil), s.movements...)
	hist := append([]*entity.PriceHistory(nil), s.history...)
	s.mu.Unlock()

	if err := fn(&memProducts{s}, &memMovements{s}, &memHistory{s}); err != nil {
		s.mu.Lock()
		s.products, s.order, s.movements, s.history = snapshot, order, movs, hist
		s.mu.Unlock()
		return err
	}
	return nil
}

type memProducts struct{ s *memStore }

var _ repository.ProductRepository = (*memProducts)(nil)

func (r *memProducts) Create(_ context.Context, p *entity.ProductRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.order = append(r.s.order, p.ID)
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.ProductRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.ProductRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *memProducts) ListActive(_ context.Context, q repository.RecordQuery) ([]entity.ProductRecord, error) {
	out, err := r.listActive(q)
	if err == nil && r.s.onList != nil {
		r.s.onList()
	}
	return out, err
}

func (r *memProducts) listActive(q repository.RecordQuery) ([]entity.ProductRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failList {
		return nil, errStore
	}
	var out []entity.ProductRecord
	for _, id := range r.s.order {
		p := r.s.products[id]
		if p.Status != entity.ProductStatusActive {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if q.Brand != "" && !strings.EqualFold(p.Brand, q.Brand) {
			continue
		}
		if q.UnitStatus != "" && p.EffectiveUnitStatus() != q.UnitStatus {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProducts) ListActiveByVariation(_ context.Context, key entity.VariationKey, _ bool) ([]entity.ProductRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failList {
		return nil, errStore
	}
	var out []entity.ProductRecord
	for _, id := range r.s.order {
		p := r.s.products[id]
		if p.Status == entity.ProductStatusActive && p.Variation() == key {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProducts) LockVariation(_ context.Context, key entity.VariationKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lockedVariations = append(r.s.lockedVariations, key.String())
	return nil
}

func (r *memProducts) UpdateStockQuantity(_ context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	p.StockQuantity = quantity
	r.s.products[id] = p
	return nil
}

func (r *memProducts) UpdatePrices(_ context.Context, ids []string, prices entity.Prices) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.updatePricesCalls++
	for i, id := range ids {
		// falla a mitad del lote para comprobar que no queda nada aplicado
		if r.s.failUpdatePrices && i == len(ids)/2 {
			return errStore
		}
		p := r.s.products[id]
		p.Prices = prices
		r.s.products[id] = p
	}
	return nil
}

func (r *memProducts) UpdateUnitStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	p.UnitStatus = status
	r.s.products[id] = p
	return nil
}

type memMovements struct{ s *memStore }

var _ repository.StockMovementRepository = (*memMovements)(nil)

func (r *memMovements) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failMovementInsert {
		return errStore
	}
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovements) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; m.ProductID == productID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entity.StockMovement{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memHistory struct{ s *memStore }

var _ repository.PriceHistoryRepository = (*memHistory)(nil)

func (r *memHistory) Create(_ context.Context, h *entity.PriceHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.history = append(r.s.history, h)
	return nil
}

func (r *memHistory) ListByVariation(_ context.Context, key entity.VariationKey, limit int) ([]*entity.PriceHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PriceHistory
	for i := len(r.s.history) - 1; i >= 0; i-- {
		if h := r.s.history[i]; h.Variation == key {
			out = append(out, h)
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// memCache cache en memoria con generaciones, igual que el adaptador Redis:
// una entrada solo se sirve si fue escrita en la generación vigente.
type memCache struct {
	mu          sync.Mutex
	gen         int64
	data        map[string]memEntry
	hits        int
	invalidated int
}

type memEntry struct {
	gen   int64
	value []byte
}

var _ appinv.GroupCache = (*memCache)(nil)

func newMemCache() *memCache { return &memCache{data: make(map[string]memEntry)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[key]
	if !ok || e.gen != c.gen {
		return nil, c.gen, false, nil
	}
	c.hits++
	return e.value, c.gen, true, nil
}

func (c *memCache) Set(_ context.Context, key string, gen int64, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = memEntry{gen: gen, value: value}
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
	return nil
}

// memMetrics registra las observaciones para aserciones.
type memMetrics struct {
	mu          sync.Mutex
	groupings   []bool
	adjustments []string
	averages    []string
	statuses    []string
}

var _ appinv.Metrics = (*memMetrics)(nil)

func (m *memMetrics) ObserveGrouping(hit bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groupings = append(m.groupings, hit)
}

func (m *memMetrics) AdjustmentApplied(t, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments = append(m.adjustments, t+":"+result)
}

func (m *memMetrics) AverageUpdated(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.averages = append(m.averages, result)
}

func (m *memMetrics) UnitStatusChanged(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
}

func intPtr(v int) *int { return &v }
