package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada (delta positivo)
	MovementTypeOut        = "out"        // salida (delta, con piso en cero)
	MovementTypeAdjustment = "adjustment" // ajuste (valor absoluto)
)

// Motivos de negocio de un movimiento.
const (
	MovementReasonPurchase       = "purchase"
	MovementReasonSale           = "sale"
	MovementReasonReturn         = "return"
	MovementReasonLoss           = "loss"
	MovementReasonDamage         = "damage"
	MovementReasonInventoryCount = "inventory_count"
	MovementReasonCorrection     = "correction"
	MovementReasonOther          = "other"
)

// StockMovement registro inmutable del ledger de stock de un producto no serializado.
// Se escribe una vez; nunca se actualiza ni se borra.
type StockMovement struct {
	ID               string
	ProductID        string
	Type             string
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	Notes            string
	ReferenceID      string
	CreatedBy        string
	CreatedAt        time.Time
}

// IsValidMovementReason verifica el motivo contra el catálogo.
func IsValidMovementReason(r string) bool {
	switch r {
	case MovementReasonPurchase, MovementReasonSale, MovementReasonReturn, MovementReasonLoss,
		MovementReasonDamage, MovementReasonInventoryCount, MovementReasonCorrection, MovementReasonOther:
		return true
	}
	return false
}
