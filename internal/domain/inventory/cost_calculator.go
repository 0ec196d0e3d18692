package inventory

import (
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// averagePlaces precisión de los promedios (fracciones de centavo).
const averagePlaces = 2

// CostCalculator implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = round(((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada), 2)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(averagePlaces)
}

// PriceAverages promedios ponderados de los cuatro precios, en centavos con 2 decimales.
type PriceAverages struct {
	Cost      decimal.Decimal `json:"price_cost"`
	Retail    decimal.Decimal `json:"price_retail"`
	Reseller  decimal.Decimal `json:"price_reseller"`
	Wholesale decimal.Decimal `json:"price_wholesale"`
}

// ZeroAverages promedios de una variación sin stock.
func ZeroAverages() PriceAverages {
	return PriceAverages{Cost: decimal.Zero, Retail: decimal.Zero, Reseller: decimal.Zero, Wholesale: decimal.Zero}
}

// CurrentAverages devuelve el stock total y el promedio ponderado por stock de cada precio:
// Σ(precio_i × qty_i) / Σ qty_i. Con stock total cero los promedios son cero.
func CurrentAverages(records []entity.ProductRecord) (int, PriceAverages) {
	total := 0
	var cost, retail, reseller, wholesale decimal.Decimal
	for _, r := range records {
		q := decimal.NewFromInt(int64(r.StockQuantity))
		total += r.StockQuantity
		cost = cost.Add(decimal.NewFromInt(r.Prices.Cost).Mul(q))
		retail = retail.Add(decimal.NewFromInt(r.Prices.Retail).Mul(q))
		reseller = reseller.Add(decimal.NewFromInt(r.Prices.Reseller).Mul(q))
		wholesale = wholesale.Add(decimal.NewFromInt(r.Prices.Wholesale).Mul(q))
	}
	if total <= 0 {
		return total, ZeroAverages()
	}
	t := decimal.NewFromInt(int64(total))
	return total, PriceAverages{
		Cost:      cost.Div(t).Round(averagePlaces),
		Retail:    retail.Div(t).Round(averagePlaces),
		Reseller:  reseller.Div(t).Round(averagePlaces),
		Wholesale: wholesale.Div(t).Round(averagePlaces),
	}
}

// BlendAverages incorpora una entrada de entryQty unidades como una muestra más del promedio.
func BlendAverages(totalStock int, current PriceAverages, entryQty int, entry entity.Prices) PriceAverages {
	t := decimal.NewFromInt(int64(totalStock))
	q := decimal.NewFromInt(int64(entryQty))
	return PriceAverages{
		Cost:      CostCalculator(t, current.Cost, q, decimal.NewFromInt(entry.Cost)),
		Retail:    CostCalculator(t, current.Retail, q, decimal.NewFromInt(entry.Retail)),
		Reseller:  CostCalculator(t, current.Reseller, q, decimal.NewFromInt(entry.Reseller)),
		Wholesale: CostCalculator(t, current.Wholesale, q, decimal.NewFromInt(entry.Wholesale)),
	}
}

// ToPrices redondea los promedios a centavos enteros para persistirlos.
func (a PriceAverages) ToPrices() entity.Prices {
	return entity.Prices{
		Cost:      a.Cost.Round(0).IntPart(),
		Retail:    a.Retail.Round(0).IntPart(),
		Reseller:  a.Reseller.Round(0).IntPart(),
		Wholesale: a.Wholesale.Round(0).IntPart(),
	}
}
