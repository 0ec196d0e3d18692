package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/mercadodovale/estoque-api/internal/domain/inventory"
)

func TestComputeStats_ValorAsimetrico(t *testing.T) {
	records := []entity.ProductRecord{
		phone("1", "Acme", "X1", "Black", "", "111", entity.UnitStatusAvailable, 1000),
		phone("2", "Acme", "X1", "Black", "", "222", entity.UnitStatusSold, 1000),
		phone("3", "Acme", "X1", "Black", "", "333", entity.UnitStatusReserved, 1000),
		phone("4", "Beta", "Z", "Red", "", "444", entity.UnitStatusMaintenance, 500),
		phone("5", "Beta", "Z", "Red", "", "555", entity.UnitStatusDefective, 500),
		bulk("p1", "Capa", 11, 10),
		bulk("p2", "Cabo", 10, 20),
		bulk("p3", "Fone", 0, 30),
	}

	st := inventory.ComputeStats(records)

	assert.Equal(t, 8, st.TotalRecords)
	assert.Equal(t, 5, st.TotalGroups)
	assert.Equal(t, 2, st.SerializedGroups)
	assert.Equal(t, 3, st.NonSerializedGroups)
	assert.Equal(t, 1, st.Available)
	assert.Equal(t, 1, st.Sold)
	assert.Equal(t, 1, st.Reserved)
	assert.Equal(t, 1, st.InMaintenance)
	assert.Equal(t, 1, st.Defective)
	assert.Equal(t, 1, st.InStock)
	assert.Equal(t, 1, st.LowStock)
	assert.Equal(t, 1, st.OutOfStock)
	// 1000 (única unidad available) + 11*10 + 10*20 + 0
	assert.Equal(t, int64(1310), st.TotalValue)
}

func TestComputeStats_Vacio(t *testing.T) {
	assert.Equal(t, entity.InventoryStats{}, inventory.ComputeStats(nil))
}

func TestStockLevel_Buckets(t *testing.T) {
	assert.Equal(t, entity.StockLevelOutOfStock, inventory.StockLevel(0))
	assert.Equal(t, entity.StockLevelLowStock, inventory.StockLevel(1))
	assert.Equal(t, entity.StockLevelLowStock, inventory.StockLevel(10))
	assert.Equal(t, entity.StockLevelInStock, inventory.StockLevel(11))
}
