package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	dominv "github.com/mercadodovale/estoque-api/internal/domain/inventory"
)

func scenarioRecords() []entity.ProductRecord {
	return []entity.ProductRecord{
		{ID: "u1", Name: "Acme X1", Brand: "Acme", Model: "X1", Specs: entity.Specs{Color: "Black", IMEI1: "111"}, UnitStatus: entity.UnitStatusAvailable, Prices: entity.Prices{Cost: 1000}},
		{ID: "u2", Name: "Acme X1", Brand: "Acme", Model: "X1", Specs: entity.Specs{Color: "Black", IMEI1: "222"}, UnitStatus: entity.UnitStatusSold, Prices: entity.Prices{Cost: 1000}},
		{ID: "p3", Name: "Acme Y2", Brand: "Acme", Model: "Y2", StockQuantity: 7, TrackInventory: true, Prices: entity.Prices{Cost: 200}},
		{ID: "old", Name: "Descontinuado", Brand: "Acme", StockQuantity: 3, Status: entity.ProductStatusInactive},
	}
}

func TestListGroups_EscenarioYCache(t *testing.T) {
	store := newMemStore(scenarioRecords()...)
	cache := newMemCache()
	metrics := &memMetrics{}
	uc := appinv.NewGroupingUseCase(&memProducts{store}, cache, metrics, zerolog.Nop())

	groups, err := uc.ListGroups(context.Background(), dominv.GroupFilters{})
	require.NoError(t, err)
	require.Len(t, groups, 2, "los registros inactivos no entran en la vista")
	assert.Equal(t, "acme|x1|black", groups[0].ProductKey)
	assert.Equal(t, 2, groups[0].TotalUnits)
	assert.Equal(t, "p3", groups[1].ProductKey)

	again, err := uc.ListGroups(context.Background(), dominv.GroupFilters{})
	require.NoError(t, err)
	assert.Equal(t, groups, again)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, []bool{false, true}, metrics.groupings)
}

func TestListGroups_MutacionDuranteLecturaNoDejaCacheVieja(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(scenarioRecords()...)
	cache := newMemCache()
	uc := appinv.NewGroupingUseCase(&memProducts{store}, cache, nil, zerolog.Nop())
	units := appinv.NewUnitStatusUseCase(&memTx{store: store}, cache, nil, zerolog.Nop())

	// la venta de u1 confirma e invalida después de que el lector tomó sus registros
	store.onList = func() {
		store.onList = nil
		_, err := units.ChangeUnitStatus(ctx, "u1", entity.UnitStatusSold)
		require.NoError(t, err)
	}
	stale, err := uc.ListGroups(ctx, dominv.GroupFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, stale[0].Available, "el lector calculó con el snapshot previo")

	fresh, err := uc.ListGroups(ctx, dominv.GroupFilters{})
	require.NoError(t, err)
	assert.Zero(t, cache.hits, "el resultado previo a la venta no se sirve desde cache")
	assert.Equal(t, 0, fresh[0].Available)
	assert.Equal(t, 2, fresh[0].Sold)

	_, err = uc.ListGroups(ctx, dominv.GroupFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "el resultado nuevo sí queda en cache")
}

func TestListGroups_FiltrosInvalidos(t *testing.T) {
	uc := appinv.NewGroupingUseCase(&memProducts{newMemStore()}, nil, nil, zerolog.Nop())
	_, err := uc.ListGroups(context.Background(), dominv.GroupFilters{OnlySerialized: true, OnlyNonSerialized: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListGroups_PropagaErrorDeConsulta(t *testing.T) {
	store := newMemStore(scenarioRecords()...)
	store.failList = true
	uc := appinv.NewGroupingUseCase(&memProducts{store}, nil, nil, zerolog.Nop())
	_, err := uc.ListGroups(context.Background(), dominv.GroupFilters{})
	assert.ErrorIs(t, err, errStore)
}

func TestStats_UsaFiltrosDeRegistro(t *testing.T) {
	store := newMemStore(scenarioRecords()...)
	uc := appinv.NewGroupingUseCase(&memProducts{store}, newMemCache(), nil, zerolog.Nop())

	st, err := uc.Stats(context.Background(), dominv.GroupFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalRecords)
	assert.Equal(t, 2, st.TotalGroups)
	assert.Equal(t, 1, st.LowStock)
	assert.Equal(t, int64(1000+7*200), st.TotalValue)

	st, err = uc.Stats(context.Background(), dominv.GroupFilters{Search: "222", OnlyAvailable: true})
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalRecords)
	assert.Equal(t, 1, st.Sold)
	assert.Zero(t, st.TotalValue)
}
