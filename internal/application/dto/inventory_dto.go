package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupFiltersQuery query string de GET /api/inventory/groups, /stats y /report.pdf.
type GroupFiltersQuery struct {
	Search            string `query:"search"`
	CategoryID        string `query:"category_id"`
	Brand             string `query:"brand"`
	Status            string `query:"status"`
	OnlyAvailable     bool   `query:"only_available"`
	OnlySerialized    bool   `query:"only_serialized"`
	OnlyNonSerialized bool   `query:"only_non_serialized"`
	SortBy            string `query:"sort_by"`    // name, sku, quantity, value
	SortOrder         string `query:"sort_order"` // asc, desc
}

// PricesDTO los cuatro precios en centavos.
type PricesDTO struct {
	Cost      int64 `json:"price_cost"`
	Retail    int64 `json:"price_retail"`
	Reseller  int64 `json:"price_reseller"`
	Wholesale int64 `json:"price_wholesale"`
}

// SpecsDTO atributos de variante y serialización.
type SpecsDTO struct {
	Color   string `json:"color,omitempty"`
	Storage string `json:"storage,omitempty"`
	RAM     string `json:"ram,omitempty"`
	IMEI1   string `json:"imei1,omitempty"`
	IMEI2   string `json:"imei2,omitempty"`
	Serial  string `json:"serial,omitempty"`
}

// SerializedUnitResponse unidad física dentro de un grupo serializado.
type SerializedUnitResponse struct {
	ID         string    `json:"id"`
	IMEI1      string    `json:"imei1,omitempty"`
	IMEI2      string    `json:"imei2,omitempty"`
	Serial     string    `json:"serial,omitempty"`
	UnitStatus string    `json:"unit_status"`
	CreatedAt  time.Time `json:"created_at"`
	Notes      string    `json:"notes,omitempty"`
}

// InventoryGroupResponse grupo de la vista de inventario.
type InventoryGroupResponse struct {
	ProductKey    string                   `json:"product_key"`
	Name          string                   `json:"name"`
	SKU           string                   `json:"sku,omitempty"`
	CategoryID    string                   `json:"category_id,omitempty"`
	Brand         string                   `json:"brand,omitempty"`
	Model         string                   `json:"model,omitempty"`
	Color         string                   `json:"color,omitempty"`
	Storage       string                   `json:"storage,omitempty"`
	RAM           string                   `json:"ram,omitempty"`
	IsSerialized  bool                     `json:"is_serialized"`
	TotalUnits    int                      `json:"total_units"`
	Available     int                      `json:"available"`
	Reserved      int                      `json:"reserved"`
	Sold          int                      `json:"sold"`
	InMaintenance int                      `json:"in_maintenance"`
	Defective     int                      `json:"defective"`
	StockLevel    string                   `json:"stock_level,omitempty"`
	Prices        PricesDTO                `json:"prices"`
	TotalValue    int64                    `json:"total_value"`
	Units         []SerializedUnitResponse `json:"units,omitempty"`
}

// InventoryGroupsResponse respuesta de GET /api/inventory/groups.
type InventoryGroupsResponse struct {
	Total  int                      `json:"total"`
	Groups []InventoryGroupResponse `json:"groups"`
}

// InventoryStatsResponse respuesta de GET /api/inventory/stats.
type InventoryStatsResponse struct {
	TotalGroups         int   `json:"total_groups"`
	TotalRecords        int   `json:"total_records"`
	SerializedGroups    int   `json:"serialized_groups"`
	NonSerializedGroups int   `json:"non_serialized_groups"`
	Available           int   `json:"available"`
	Reserved            int   `json:"reserved"`
	Sold                int   `json:"sold"`
	InMaintenance       int   `json:"in_maintenance"`
	Defective           int   `json:"defective"`
	InStock             int   `json:"in_stock"`
	LowStock            int   `json:"low_stock"`
	OutOfStock          int   `json:"out_of_stock"`
	TotalValue          int64 `json:"total_value"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments.
type AdjustmentRequest struct {
	ProductID   string `json:"product_id"`
	Type        string `json:"type"` // in, out, adjustment
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// StockMovementResponse movimiento del ledger.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason"`
	Notes            string    `json:"notes,omitempty"`
	ReferenceID      string    `json:"reference_id,omitempty"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementListResponse respuesta paginada de GET /api/inventory/movements.
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// AveragePriceRequest body para POST /api/inventory/average-prices.
// stock_quantity ausente o 0 cuenta como 1 unidad.
type AveragePriceRequest struct {
	ModelID       string `json:"model_id"`
	RAM           string `json:"ram"`
	Storage       string `json:"storage"`
	StockQuantity *int   `json:"stock_quantity,omitempty"`
	PricesDTO
}

// StockEntryRequest body para POST /api/inventory/entries (alta de registro + promedio).
type StockEntryRequest struct {
	ModelID        string   `json:"model_id,omitempty"`
	CategoryID     string   `json:"category_id,omitempty"`
	Name           string   `json:"name"`
	SKU            string   `json:"sku,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Model          string   `json:"model,omitempty"`
	Specs          SpecsDTO `json:"specs"`
	StockQuantity  *int     `json:"stock_quantity,omitempty"`
	TrackInventory *bool    `json:"track_inventory,omitempty"` // default true para ítems a granel
	Notes          string   `json:"notes,omitempty"`
	PricesDTO
}

// AveragesDTO promedios con 2 decimales (centavos fraccionarios).
type AveragesDTO struct {
	Cost      decimal.Decimal `json:"price_cost"`
	Retail    decimal.Decimal `json:"price_retail"`
	Reseller  decimal.Decimal `json:"price_reseller"`
	Wholesale decimal.Decimal `json:"price_wholesale"`
}

// AverageResultResponse resultado del recálculo de promedios.
type AverageResultResponse struct {
	ModelID        string      `json:"model_id"`
	RAM            string      `json:"ram"`
	Storage        string      `json:"storage"`
	PreviousStock  int         `json:"previous_stock"`
	NewStock       int         `json:"new_stock"`
	Previous       AveragesDTO `json:"previous"`
	Averages       AveragesDTO `json:"averages"`
	UpdatedRecords int         `json:"updated_records"`
}

// ProductRecordResponse registro de producto.
type ProductRecordResponse struct {
	ID             string    `json:"id"`
	ModelID        string    `json:"model_id,omitempty"`
	CategoryID     string    `json:"category_id,omitempty"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku,omitempty"`
	Brand          string    `json:"brand,omitempty"`
	Model          string    `json:"model,omitempty"`
	Specs          SpecsDTO  `json:"specs"`
	IsSerialized   bool      `json:"is_serialized"`
	UnitStatus     string    `json:"unit_status,omitempty"`
	Status         string    `json:"status"`
	StockQuantity  int       `json:"stock_quantity"`
	TrackInventory bool      `json:"track_inventory"`
	Prices         PricesDTO `json:"prices"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StockEntryResponse respuesta de POST /api/inventory/entries.
type StockEntryResponse struct {
	Product  ProductRecordResponse  `json:"product"`
	Averages *AverageResultResponse `json:"averages,omitempty"`
}

// UnitStatusRequest body para PATCH /api/inventory/units/:id/status.
type UnitStatusRequest struct {
	UnitStatus string `json:"unit_status"`
}

// PriceHistoryResponse fila del historial de promedios.
type PriceHistoryResponse struct {
	ID             string      `json:"id"`
	ModelID        string      `json:"model_id"`
	RAM            string      `json:"ram"`
	Storage        string      `json:"storage"`
	PreviousStock  int         `json:"previous_stock"`
	EntryQuantity  int         `json:"entry_quantity"`
	NewStock       int         `json:"new_stock"`
	Averages       AveragesDTO `json:"averages"`
	UpdatedRecords int         `json:"updated_records"`
	CreatedAt      time.Time   `json:"created_at"`
}
