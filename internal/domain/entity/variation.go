package entity

import "strings"

// VariationKey identifica una variación fungible para el costo promedio.
// El color queda fuera a propósito: todos los colores comparten el mismo pool de costo.
type VariationKey struct {
	ModelID string
	RAM     string
	Storage string
}

// Complete indica si la clave permite agrupar por variación.
func (k VariationKey) Complete() bool {
	return k.ModelID != "" && k.RAM != "" && k.Storage != ""
}

// String forma estable de la clave (usada para locks por variación).
func (k VariationKey) String() string {
	return strings.Join([]string{k.ModelID, k.RAM, k.Storage}, "|")
}
