package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrNotTrackable     = errors.New("el producto no controla inventario")
	ErrInvalidQuantity  = errors.New("cantidad inválida")
	ErrInvalidStatus    = errors.New("estado de unidad inválido")
	ErrNotSerialized    = errors.New("el producto no es serializado")
	ErrMissingVariation = errors.New("variación incompleta: model_id, ram y storage son obligatorios")
)
