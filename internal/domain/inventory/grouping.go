package inventory

import (
	"sort"
	"strings"

	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Claves de ordenamiento admitidas.
const (
	SortByName     = "name"
	SortBySKU      = "sku"
	SortByQuantity = "quantity"
	SortByValue    = "value"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// LowStockThreshold límite superior del bucket low_stock (1..10).
const LowStockThreshold = 10

// GroupFilters filtros de la vista de inventario. Todos opcionales: vacío/false = sin filtro.
type GroupFilters struct {
	Search            string
	CategoryID        string
	Brand             string
	Status            string
	OnlyAvailable     bool
	OnlySerialized    bool
	OnlyNonSerialized bool
	SortBy            string
	SortOrder         string
}

// Validate rechaza combinaciones imposibles antes de consultar.
func (f GroupFilters) Validate() error {
	if f.OnlySerialized && f.OnlyNonSerialized {
		return domain.ErrInvalidInput
	}
	switch f.SortBy {
	case "", SortByName, SortBySKU, SortByQuantity, SortByValue:
	default:
		return domain.ErrInvalidInput
	}
	switch f.SortOrder {
	case "", SortOrderAsc, SortOrderDesc:
	default:
		return domain.ErrInvalidInput
	}
	if f.Status != "" && !entity.IsValidUnitStatus(f.Status) {
		return domain.ErrInvalidStatus
	}
	return nil
}

// matchesRecord aplica los filtros a nivel de registro (búsqueda, categoría, marca, estado).
func (f GroupFilters) matchesRecord(p entity.ProductRecord) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Status != "" && p.EffectiveUnitStatus() != f.Status {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		found := false
		for _, s := range []string{p.Name, p.SKU, p.Specs.IMEI1, p.Specs.IMEI2, p.Specs.Serial} {
			if strings.Contains(strings.ToLower(s), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesGroup aplica los post-filtros sobre el agregado.
func (f GroupFilters) matchesGroup(g entity.InventoryGroup) bool {
	if f.OnlySerialized && !g.IsSerialized {
		return false
	}
	if f.OnlyNonSerialized && g.IsSerialized {
		return false
	}
	if f.OnlyAvailable {
		if g.IsSerialized {
			return g.Available > 0
		}
		return g.TotalUnits > 0
	}
	return true
}

// FilterRecords devuelve los registros que pasan los filtros de registro.
func FilterRecords(records []entity.ProductRecord, f GroupFilters) []entity.ProductRecord {
	out := make([]entity.ProductRecord, 0, len(records))
	for _, r := range records {
		if f.matchesRecord(r) {
			out = append(out, r)
		}
	}
	return out
}

// ComputeGroups agrupa los registros por ProductKey, cuenta unidades por estado,
// aplica post-filtros y ordena. Sin sort_by conserva el orden de primera aparición,
// así que la salida es determinista para una misma entrada.
func ComputeGroups(records []entity.ProductRecord, f GroupFilters) []entity.InventoryGroup {
	index := make(map[groupID]int, len(records))
	groups := make([]entity.InventoryGroup, 0)
	for _, r := range records {
		if !f.matchesRecord(r) {
			continue
		}
		id := groupIDOf(r)
		i, ok := index[id]
		if !ok {
			groups = append(groups, newGroup(id.key, r))
			i = len(groups) - 1
			index[id] = i
		}
		addToGroup(&groups[i], r)
	}

	filtered := groups[:0]
	for _, g := range groups {
		if f.matchesGroup(g) {
			filtered = append(filtered, g)
		}
	}
	sortGroups(filtered, f.SortBy, f.SortOrder)
	return filtered
}

func newGroup(key string, r entity.ProductRecord) entity.InventoryGroup {
	return entity.InventoryGroup{
		ProductKey:   key,
		Name:         r.Name,
		SKU:          r.SKU,
		CategoryID:   r.CategoryID,
		Brand:        r.Brand,
		Model:        r.Model,
		Color:        r.Specs.Color,
		Storage:      r.Specs.Storage,
		RAM:          r.Specs.RAM,
		IsSerialized: r.IsSerialized(),
		Prices:       r.Prices,
	}
}

func addToGroup(g *entity.InventoryGroup, r entity.ProductRecord) {
	if !g.IsSerialized {
		qty := max(r.StockQuantity, 0)
		g.TotalUnits += qty
		g.StockLevel = StockLevel(qty)
		g.TotalValue += int64(qty) * r.Prices.Cost
		return
	}
	g.TotalUnits++
	g.TotalValue += r.Prices.Cost
	status := r.EffectiveUnitStatus()
	switch status {
	case entity.UnitStatusAvailable:
		g.Available++
	case entity.UnitStatusReserved:
		g.Reserved++
	case entity.UnitStatusSold:
		g.Sold++
	case entity.UnitStatusMaintenance:
		g.InMaintenance++
	case entity.UnitStatusDefective:
		g.Defective++
	}
	g.Units = append(g.Units, entity.SerializedUnit{
		ID:         r.ID,
		IMEI1:      r.Specs.IMEI1,
		IMEI2:      r.Specs.IMEI2,
		Serial:     r.Specs.Serial,
		UnitStatus: status,
		CreatedAt:  r.CreatedAt,
		Notes:      r.Notes,
	})
}

// StockLevel clasifica una cantidad a granel: in_stock (>10), low_stock (1..10), out_of_stock (0).
func StockLevel(qty int) string {
	switch {
	case qty <= 0:
		return entity.StockLevelOutOfStock
	case qty <= LowStockThreshold:
		return entity.StockLevelLowStock
	}
	return entity.StockLevelInStock
}

func sortGroups(groups []entity.InventoryGroup, sortBy, order string) {
	if sortBy == "" {
		return
	}
	// Collator no es seguro para uso concurrente: uno por llamada.
	col := collate.New(language.BrazilianPortuguese)
	cmp := func(a, b entity.InventoryGroup) int {
		switch sortBy {
		case SortByName:
			return col.CompareString(a.Name, b.Name)
		case SortBySKU:
			return strings.Compare(a.SKU, b.SKU)
		case SortByQuantity:
			return compareInt(int64(a.TotalUnits), int64(b.TotalUnits))
		case SortByValue:
			return compareInt(a.TotalValue, b.TotalValue)
		}
		return 0
	}
	sign := 1
	if order == SortOrderDesc {
		sign = -1
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return sign*cmp(groups[i], groups[j]) < 0
	})
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
