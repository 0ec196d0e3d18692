package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	dominv "github.com/mercadodovale/estoque-api/internal/domain/inventory"
)

func TestChangeUnitStatus_VentaSaleDeDisponibles(t *testing.T) {
	store := newMemStore(scenarioRecords()...)
	cache := newMemCache()
	metrics := &memMetrics{}
	grouping := appinv.NewGroupingUseCase(&memProducts{store}, cache, nil, zerolog.Nop())
	uc := appinv.NewUnitStatusUseCase(&memTx{store: store}, cache, metrics, zerolog.Nop())
	ctx := context.Background()

	before, err := grouping.ListGroups(ctx, dominv.GroupFilters{OnlyAvailable: true, OnlySerialized: true})
	require.NoError(t, err)
	require.Len(t, before, 1)

	p, err := uc.ChangeUnitStatus(ctx, "u1", entity.UnitStatusSold)
	require.NoError(t, err)
	assert.Equal(t, entity.UnitStatusSold, p.UnitStatus)
	assert.Equal(t, entity.UnitStatusSold, store.get("u1").UnitStatus)
	assert.Equal(t, []string{entity.UnitStatusSold}, metrics.statuses)

	// la invalidación fuerza a recalcular: el grupo ya no tiene unidades disponibles
	after, err := grouping.ListGroups(ctx, dominv.GroupFilters{OnlyAvailable: true, OnlySerialized: true})
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestChangeUnitStatus_Errores(t *testing.T) {
	store := newMemStore(scenarioRecords()...)
	tx := &memTx{store: store}
	uc := appinv.NewUnitStatusUseCase(tx, nil, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.ChangeUnitStatus(ctx, "u1", "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = uc.ChangeUnitStatus(ctx, "", entity.UnitStatusSold)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, tx.runs)

	_, err = uc.ChangeUnitStatus(ctx, "p3", entity.UnitStatusSold)
	assert.ErrorIs(t, err, domain.ErrNotSerialized)
	_, err = uc.ChangeUnitStatus(ctx, "nope", entity.UnitStatusSold)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type stubGenerator struct {
	report appinv.InventoryReport
	err    error
}

func (g *stubGenerator) GenerateInventoryPDF(_ context.Context, r appinv.InventoryReport) ([]byte, error) {
	g.report = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestDownloadInventoryPDF_ArmaReporte(t *testing.T) {
	store := newMemStore(scenarioRecords()...)
	grouping := appinv.NewGroupingUseCase(&memProducts{store}, nil, nil, zerolog.Nop())
	gen := &stubGenerator{}
	uc := appinv.NewReportUseCase(grouping, gen)

	pdf, name, err := uc.DownloadInventoryPDF(context.Background(), dominv.GroupFilters{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Regexp(t, `^inventario-\d{8}-\d{4}\.pdf$`, name)
	assert.Len(t, gen.report.Groups, 2)
	assert.Equal(t, 3, gen.report.Stats.TotalRecords)

	gen.err = errors.New("sin fuente")
	_, _, err = uc.DownloadInventoryPDF(context.Background(), dominv.GroupFilters{})
	assert.Error(t, err)
}
