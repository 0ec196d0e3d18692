package inventory

import (
	"context"
	"fmt"
	"time"

	dominv "github.com/mercadodovale/estoque-api/internal/domain/inventory"
)

// ReportUseCase genera el reporte PDF del inventario con los filtros de la vista.
type ReportUseCase struct {
	grouping  *GroupingUseCase
	generator InventoryReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(grouping *GroupingUseCase, generator InventoryReportGenerator) *ReportUseCase {
	return &ReportUseCase{grouping: grouping, generator: generator}
}

// DownloadInventoryPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) DownloadInventoryPDF(ctx context.Context, f dominv.GroupFilters) ([]byte, string, error) {
	groups, err := uc.grouping.ListGroups(ctx, f)
	if err != nil {
		return nil, "", err
	}
	stats, err := uc.grouping.Stats(ctx, f)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	pdf, err := uc.generator.GenerateInventoryPDF(ctx, InventoryReport{
		Title:       "Inventário",
		GeneratedAt: now,
		Stats:       stats,
		Groups:      groups,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte de inventario: %w", err)
	}
	return pdf, fmt.Sprintf("inventario-%s.pdf", now.Format("20060102-1504")), nil
}
