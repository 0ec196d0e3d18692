package http

import (
	"strings"

	"github.com/mercadodovale/estoque-api/internal/application/dto"
	appinv "github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	dominv "github.com/mercadodovale/estoque-api/internal/domain/inventory"
)

func toGroupFilters(q dto.GroupFiltersQuery) dominv.GroupFilters {
	return dominv.GroupFilters{
		Search:            strings.TrimSpace(q.Search),
		CategoryID:        q.CategoryID,
		Brand:             strings.TrimSpace(q.Brand),
		Status:            q.Status,
		OnlyAvailable:     q.OnlyAvailable,
		OnlySerialized:    q.OnlySerialized,
		OnlyNonSerialized: q.OnlyNonSerialized,
		SortBy:            strings.ToLower(q.SortBy),
		SortOrder:         strings.ToLower(q.SortOrder),
	}
}

func toPricesDTO(p entity.Prices) dto.PricesDTO {
	return dto.PricesDTO{Cost: p.Cost, Retail: p.Retail, Reseller: p.Reseller, Wholesale: p.Wholesale}
}

func fromPricesDTO(p dto.PricesDTO) entity.Prices {
	return entity.Prices{Cost: p.Cost, Retail: p.Retail, Reseller: p.Reseller, Wholesale: p.Wholesale}
}

func toGroupResponse(g entity.InventoryGroup) dto.InventoryGroupResponse {
	out := dto.InventoryGroupResponse{
		ProductKey:    g.ProductKey,
		Name:          g.Name,
		SKU:           g.SKU,
		CategoryID:    g.CategoryID,
		Brand:         g.Brand,
		Model:         g.Model,
		Color:         g.Color,
		Storage:       g.Storage,
		RAM:           g.RAM,
		IsSerialized:  g.IsSerialized,
		TotalUnits:    g.TotalUnits,
		Available:     g.Available,
		Reserved:      g.Reserved,
		Sold:          g.Sold,
		InMaintenance: g.InMaintenance,
		Defective:     g.Defective,
		StockLevel:    g.StockLevel,
		Prices:        toPricesDTO(g.Prices),
		TotalValue:    g.TotalValue,
	}
	for _, u := range g.Units {
		out.Units = append(out.Units, dto.SerializedUnitResponse{
			ID:         u.ID,
			IMEI1:      u.IMEI1,
			IMEI2:      u.IMEI2,
			Serial:     u.Serial,
			UnitStatus: u.UnitStatus,
			CreatedAt:  u.CreatedAt,
			Notes:      u.Notes,
		})
	}
	return out
}

func toStatsResponse(s entity.InventoryStats) dto.InventoryStatsResponse {
	return dto.InventoryStatsResponse{
		TotalGroups:         s.TotalGroups,
		TotalRecords:        s.TotalRecords,
		SerializedGroups:    s.SerializedGroups,
		NonSerializedGroups: s.NonSerializedGroups,
		Available:           s.Available,
		Reserved:            s.Reserved,
		Sold:                s.Sold,
		InMaintenance:       s.InMaintenance,
		Defective:           s.Defective,
		InStock:             s.InStock,
		LowStock:            s.LowStock,
		OutOfStock:          s.OutOfStock,
		TotalValue:          s.TotalValue,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		Notes:            m.Notes,
		ReferenceID:      m.ReferenceID,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

func toAveragesDTO(a dominv.PriceAverages) dto.AveragesDTO {
	return dto.AveragesDTO{Cost: a.Cost, Retail: a.Retail, Reseller: a.Reseller, Wholesale: a.Wholesale}
}

func toAverageResponse(r *appinv.AverageResult) *dto.AverageResultResponse {
	if r == nil {
		return nil
	}
	return &dto.AverageResultResponse{
		ModelID:        r.Variation.ModelID,
		RAM:            r.Variation.RAM,
		Storage:        r.Variation.Storage,
		PreviousStock:  r.PreviousStock,
		NewStock:       r.NewStock,
		Previous:       toAveragesDTO(r.Previous),
		Averages:       toAveragesDTO(r.Averages),
		UpdatedRecords: r.UpdatedRecords,
	}
}

func toProductResponse(p *entity.ProductRecord) dto.ProductRecordResponse {
	return dto.ProductRecordResponse{
		ID:         p.ID,
		ModelID:    p.ModelID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		SKU:        p.SKU,
		Brand:      p.Brand,
		Model:      p.Model,
		Specs: dto.SpecsDTO{
			Color:   p.Specs.Color,
			Storage: p.Specs.Storage,
			RAM:     p.Specs.RAM,
			IMEI1:   p.Specs.IMEI1,
			IMEI2:   p.Specs.IMEI2,
			Serial:  p.Specs.Serial,
		},
		IsSerialized:   p.IsSerialized(),
		UnitStatus:     p.UnitStatus,
		Status:         p.Status,
		StockQuantity:  p.StockQuantity,
		TrackInventory: p.TrackInventory,
		Prices:         toPricesDTO(p.Prices),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// toNewRecordInput track_inventory ausente vale true.
func toNewRecordInput(in dto.StockEntryRequest) appinv.NewRecordInput {
	track := true
	if in.TrackInventory != nil {
		track = *in.TrackInventory
	}
	return appinv.NewRecordInput{
		ModelID:    strings.TrimSpace(in.ModelID),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		SKU:        strings.TrimSpace(in.SKU),
		Brand:      strings.TrimSpace(in.Brand),
		Model:      strings.TrimSpace(in.Model),
		Specs: entity.Specs{
			Color:   strings.TrimSpace(in.Specs.Color),
			Storage: strings.TrimSpace(in.Specs.Storage),
			RAM:     strings.TrimSpace(in.Specs.RAM),
			IMEI1:   strings.TrimSpace(in.Specs.IMEI1),
			IMEI2:   strings.TrimSpace(in.Specs.IMEI2),
			Serial:  strings.TrimSpace(in.Specs.Serial),
		},
		StockQuantity:  in.StockQuantity,
		TrackInventory: track,
		Prices:         fromPricesDTO(in.PricesDTO),
		Notes:          in.Notes,
	}
}

func toPriceHistoryResponse(h *entity.PriceHistory) dto.PriceHistoryResponse {
	return dto.PriceHistoryResponse{
		ID:            h.ID,
		ModelID:       h.Variation.ModelID,
		RAM:           h.Variation.RAM,
		Storage:       h.Variation.Storage,
		PreviousStock: h.PreviousStock,
		EntryQuantity: h.EntryQuantity,
		NewStock:      h.NewStock,
		Averages: dto.AveragesDTO{
			Cost:      h.AvgCost,
			Retail:    h.AvgRetail,
			Reseller:  h.AvgReseller,
			Wholesale: h.AvgWholesale,
		},
		UpdatedRecords: h.UpdatedRecords,
		CreatedAt:      h.CreatedAt,
	}
}
