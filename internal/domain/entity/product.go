package entity

import "time"

// Estados de una unidad física (solo relevantes en productos serializados).
const (
	UnitStatusAvailable   = "available"
	UnitStatusReserved    = "reserved"
	UnitStatusSold        = "sold"
	UnitStatusMaintenance = "maintenance"
	UnitStatusDefective   = "defective"
)

// Estado de ciclo de vida del registro; el core nunca borra filas.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Specs atributos de variante y serialización, persistidos en la columna JSONB specs.
type Specs struct {
	Color   string `json:"color,omitempty"`
	Storage string `json:"storage,omitempty"`
	RAM     string `json:"ram,omitempty"`
	IMEI1   string `json:"imei1,omitempty"`
	IMEI2   string `json:"imei2,omitempty"`
	Serial  string `json:"serial,omitempty"`
}

// Prices precios en centavos (unidades menores). Nunca en punto flotante.
type Prices struct {
	Cost      int64
	Retail    int64
	Reseller  int64
	Wholesale int64
}

// ProductRecord unidad atómica del inventario: un ítem a granel (stock_quantity)
// o una unidad física de un producto serializado (IMEI/serie).
type ProductRecord struct {
	ID             string
	ModelID        string // vacío = sin modelo lógico
	CategoryID     string
	Name           string
	SKU            string
	Brand          string
	Model          string
	Specs          Specs
	UnitStatus     string // vacío se interpreta como available
	Status         string // active, inactive
	StockQuantity  int
	TrackInventory bool
	Prices         Prices
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSerialized indica si el registro es una unidad serializada: basta con que
// imei1, imei2 o serial tengan valor. Se deriva siempre aquí, nunca se persiste.
func (p ProductRecord) IsSerialized() bool {
	return p.Specs.IMEI1 != "" || p.Specs.IMEI2 != "" || p.Specs.Serial != ""
}

// EffectiveUnitStatus devuelve unit_status con el default available.
func (p ProductRecord) EffectiveUnitStatus() string {
	if p.UnitStatus == "" {
		return UnitStatusAvailable
	}
	return p.UnitStatus
}

// Variation devuelve la clave de variación (modelo × RAM × almacenamiento).
func (p ProductRecord) Variation() VariationKey {
	return VariationKey{ModelID: p.ModelID, RAM: p.Specs.RAM, Storage: p.Specs.Storage}
}

// IsValidUnitStatus verifica que s sea uno de los estados conocidos.
func IsValidUnitStatus(s string) bool {
	switch s {
	case UnitStatusAvailable, UnitStatusReserved, UnitStatusSold, UnitStatusMaintenance, UnitStatusDefective:
		return true
	}
	return false
}
