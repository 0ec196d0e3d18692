// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                    │  Fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: grupos / registros / estados / niveles / valor    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Produto | SKU | Unid. | Disp. | Nível | Valor       │
//	│         └ unidades serializadas (IMEI/serie + estado)       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor del inventario                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appinv "github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// Etiquetas visibles del reporte (pt-BR).
var (
	levelLabels = map[string]string{
		entity.StockLevelInStock:    "Em estoque",
		entity.StockLevelLowStock:   "Estoque baixo",
		entity.StockLevelOutOfStock: "Sem estoque",
	}
	statusLabels = map[string]string{
		entity.UnitStatusAvailable:   "Disponível",
		entity.UnitStatusReserved:    "Reservado",
		entity.UnitStatusSold:        "Vendido",
		entity.UnitStatusMaintenance: "Manutenção",
		entity.UnitStatusDefective:   "Defeituoso",
	}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinv.InventoryReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.InventoryReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author va a los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryPDF(_ context.Context, report appinv.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Stats)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, grp := range report.Groups {
		m.AddRows(groupRows(grp)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(report.Stats))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report appinv.InventoryReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// summaryRows: contadores de la vista en dos líneas.
func summaryRows(st entity.InventoryStats) []core.Row {
	item := func(label string, v int) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", v), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return []core.Row{
		row.New(12).Add(
			item("Grupos", st.TotalGroups),
			item("Registros", st.TotalRecords),
			item("Serializados", st.SerializedGroups),
			item("A granel", st.NonSerializedGroups),
			item("Em estoque", st.InStock),
			item("Estoque baixo", st.LowStock),
		),
		row.New(12).Add(
			item("Disponíveis", st.Available),
			item("Reservados", st.Reserved),
			item("Vendidos", st.Sold),
			item("Manutenção", st.InMaintenance),
			item("Defeituosos", st.Defective),
			item("Sem estoque", st.OutOfStock),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Unid.", 1, align.Center),
		h("Disp.", 1, align.Center),
		h("Nível", 2, align.Left),
		h("Valor", 2, align.Right),
	)
}

// groupRows: una fila por grupo y, para serializados, una sub-fila por unidad.
func groupRows(g entity.InventoryGroup) []core.Row {
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c,
		}))
	}

	available := "—"
	level := levelLabels[g.StockLevel]
	var levelColor *props.Color
	if g.IsSerialized {
		available = fmt.Sprintf("%d", g.Available)
		level = "Serializado"
	} else if g.StockLevel != entity.StockLevelInStock {
		levelColor = colorAlert
	}

	rows := []core.Row{row.New(7).Add(
		cell(groupTitle(g), 4, align.Left, nil),
		cell(g.SKU, 2, align.Left, colorGray),
		cell(fmt.Sprintf("%d", g.TotalUnits), 1, align.Center, nil),
		cell(available, 1, align.Center, nil),
		cell(level, 2, align.Left, levelColor),
		cell(FormatCents(g.TotalValue), 2, align.Right, nil),
	)}

	for _, u := range g.Units {
		rows = append(rows, row.New(5).Add(
			col.New(1),
			col.New(7).Add(text.New(unitIdentifier(u), props.Text{Size: 7, Color: colorGray, Top: 0.5})),
			col.New(4).Add(text.New(statusLabel(u.UnitStatus), props.Text{Size: 7, Color: colorGray, Top: 0.5})),
		))
	}
	return rows
}

func totalRow(st entity.InventoryStats) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(FormatCents(st.TotalValue), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// groupTitle nombre + atributos de variante presentes.
func groupTitle(g entity.InventoryGroup) string {
	parts := []string{g.Name}
	for _, s := range []string{g.Color, g.Storage, g.RAM} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func unitIdentifier(u entity.SerializedUnit) string {
	switch {
	case u.IMEI1 != "" && u.IMEI2 != "":
		return "IMEI " + u.IMEI1 + " / " + u.IMEI2
	case u.IMEI1 != "":
		return "IMEI " + u.IMEI1
	case u.IMEI2 != "":
		return "IMEI " + u.IMEI2
	}
	return "S/N " + u.Serial
}

func statusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

// FormatCents formatea centavos como moneda pt-BR. Ej: 123456 → "R$ 1.234,56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	fixed := decimal.New(cents, -2).StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "R$ " + formatMoney(intPart) + "," + frac
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
