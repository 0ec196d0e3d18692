package inventory

import (
	"strings"

	"github.com/mercadodovale/estoque-api/internal/domain/entity"
)

// ProductKey calcula la clave de grupo de un registro.
// Serializado: brand|model|color|storage sin componentes vacíos, en minúsculas;
// dos unidades con la misma configuración colapsan en un grupo sin importar el IMEI.
// No serializado: el propio id (grupo singleton).
func ProductKey(p entity.ProductRecord) string {
	if !p.IsSerialized() {
		return p.ID
	}
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Brand, p.Model, p.Specs.Color, p.Specs.Storage} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, "|"))
}

// groupID evita colisiones entre una clave compuesta y el id de un registro a granel.
type groupID struct {
	serialized bool
	key        string
}

func groupIDOf(p entity.ProductRecord) groupID {
	return groupID{serialized: p.IsSerialized(), key: ProductKey(p)}
}
