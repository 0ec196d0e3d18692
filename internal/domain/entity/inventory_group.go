package entity

import "time"

// Niveles de stock para productos no serializados.
const (
	StockLevelInStock    = "in_stock"
	StockLevelLowStock   = "low_stock"
	StockLevelOutOfStock = "out_of_stock"
)

// SerializedUnit proyección de una unidad física dentro de un grupo serializado.
type SerializedUnit struct {
	ID         string
	IMEI1      string
	IMEI2      string
	Serial     string
	UnitStatus string
	CreatedAt  time.Time
	Notes      string
}

// InventoryGroup agregado derivado (no persistido) de registros que comparten ProductKey.
// Para grupos serializados los contadores por estado suman TotalUnits (salvo estados desconocidos).
// Para grupos no serializados TotalUnits es el stock_quantity del registro.
type InventoryGroup struct {
	ProductKey    string
	Name          string
	SKU           string
	CategoryID    string
	Brand         string
	Model         string
	Color         string
	Storage       string
	RAM           string
	IsSerialized  bool
	TotalUnits    int
	Available     int
	Reserved      int
	Sold          int
	InMaintenance int
	Defective     int
	StockLevel    string // solo no serializados
	Prices        Prices // del registro representativo; no se re-promedia aquí
	TotalValue    int64  // Σ costo × unidades de los registros del grupo
	Units         []SerializedUnit
}

// InventoryStats resumen global del inventario.
type InventoryStats struct {
	TotalGroups         int
	TotalRecords        int
	SerializedGroups    int
	NonSerializedGroups int
	Available           int
	Reserved            int
	Sold                int
	InMaintenance       int
	Defective           int
	InStock             int
	LowStock            int
	OutOfStock          int
	TotalValue          int64
}
