package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/mercadodovale/estoque-api/internal/domain/inventory"
)

func TestApplyAdjustment_Tipos(t *testing.T) {
	cases := []struct {
		name     string
		previous int
		typ      string
		qty      int
		want     int
	}{
		{"entrada suma", 5, entity.MovementTypeIn, 3, 8},
		{"salida resta", 5, entity.MovementTypeOut, 3, 2},
		{"salida con piso en cero", 5, entity.MovementTypeOut, 9, 0},
		{"ajuste absoluto", 5, entity.MovementTypeAdjustment, 12, 12},
		{"ajuste a cero", 5, entity.MovementTypeAdjustment, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.ApplyAdjustment(tc.previous, tc.typ, tc.qty)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyAdjustment_Invalidos(t *testing.T) {
	_, err := inventory.ApplyAdjustment(5, entity.MovementTypeIn, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.ApplyAdjustment(5, entity.MovementTypeOut, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.ApplyAdjustment(5, "transfer", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckTrackable(t *testing.T) {
	assert.ErrorIs(t, inventory.CheckTrackable(nil), domain.ErrNotFound)
	assert.ErrorIs(t, inventory.CheckTrackable(&entity.ProductRecord{TrackInventory: false}), domain.ErrNotTrackable)
	assert.ErrorIs(t, inventory.CheckTrackable(&entity.ProductRecord{TrackInventory: true, Specs: entity.Specs{Serial: "S1"}}), domain.ErrNotTrackable)
	assert.NoError(t, inventory.CheckTrackable(&entity.ProductRecord{TrackInventory: true}))
}
