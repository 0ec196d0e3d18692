package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory registro append-only de cada recálculo de promedios de una variación.
// Los promedios se guardan con 2 decimales (NUMERIC), antes del redondeo a centavos.
type PriceHistory struct {
	ID             string
	Variation      VariationKey
	PreviousStock  int
	EntryQuantity  int
	NewStock       int
	AvgCost        decimal.Decimal
	AvgRetail      decimal.Decimal
	AvgReseller    decimal.Decimal
	AvgWholesale   decimal.Decimal
	UpdatedRecords int
	CreatedAt      time.Time
}
