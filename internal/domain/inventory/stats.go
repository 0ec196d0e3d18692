package inventory

import "github.com/mercadodovale/estoque-api/internal/domain/entity"

// ComputeStats resume el inventario en una sola pasada.
// El valor total cuenta solo unidades serializadas available (vendidas o reservadas ya no son
// inventario vendible) y toda la cantidad a granel (que ya refleja solo lo que hay en mano).
func ComputeStats(records []entity.ProductRecord) entity.InventoryStats {
	var st entity.InventoryStats
	seen := make(map[groupID]struct{}, len(records))
	for _, r := range records {
		st.TotalRecords++
		serialized := r.IsSerialized()
		id := groupIDOf(r)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			st.TotalGroups++
			if serialized {
				st.SerializedGroups++
			} else {
				st.NonSerializedGroups++
			}
		}

		if !serialized {
			qty := max(r.StockQuantity, 0)
			switch StockLevel(qty) {
			case entity.StockLevelInStock:
				st.InStock++
			case entity.StockLevelLowStock:
				st.LowStock++
			default:
				st.OutOfStock++
			}
			st.TotalValue += int64(qty) * r.Prices.Cost
			continue
		}

		switch r.EffectiveUnitStatus() {
		case entity.UnitStatusAvailable:
			st.Available++
			st.TotalValue += r.Prices.Cost
		case entity.UnitStatusReserved:
			st.Reserved++
		case entity.UnitStatusSold:
			st.Sold++
		case entity.UnitStatusMaintenance:
			st.InMaintenance++
		case entity.UnitStatusDefective:
			st.Defective++
		}
	}
	return st
}
