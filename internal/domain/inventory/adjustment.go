package inventory

import (
	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
)

// ApplyAdjustment calcula la nueva cantidad de un registro no serializado.
//   - in: previa + cantidad
//   - out: max(0, previa - cantidad), nunca negativa
//   - adjustment: cantidad (valor absoluto)
func ApplyAdjustment(previous int, movementType string, quantity int) (int, error) {
	if quantity < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	switch movementType {
	case entity.MovementTypeIn:
		if quantity == 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return previous + quantity, nil
	case entity.MovementTypeOut:
		if quantity == 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return max(0, previous-quantity), nil
	case entity.MovementTypeAdjustment:
		return quantity, nil
	}
	return 0, domain.ErrInvalidInput
}

// CheckTrackable valida que el registro admita ajustes de stock.
func CheckTrackable(p *entity.ProductRecord) error {
	if p == nil {
		return domain.ErrNotFound
	}
	if p.IsSerialized() || !p.TrackInventory {
		return domain.ErrNotTrackable
	}
	return nil
}
