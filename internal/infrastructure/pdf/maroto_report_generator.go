// Package pdf implementa la generación del reporte de reposición de stock bajo
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Categoría | Stock | Reorden | Sugerido    │
//	│         | Costo estimado                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: costo estimado del pedido completo                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 120}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator genera el reporte PDF de reposición.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockReport(appName string, items []inventory.LowStockItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de reposición de inventario", true).
		WithAuthor(appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(appName, len(items)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, it := range items {
		m.AddRows(detailRow(it))
		total = total.Add(it.EstimatedCost)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(appName string, count int) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE REPOSICIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %d artículos en o bajo punto de reorden", appName, count), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de artículos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Artículo", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Reorden", 1, align.Right),
		h("Sugerido", 2, align.Right),
		h("Costo est.", 2, align.Right),
	)
}

// detailRow: una fila por artículo bajo reorden.
func detailRow(it inventory.LowStockItem) core.Row {
	reorder := "—"
	if it.Item.ReorderPoint != nil {
		reorder = fmt.Sprintf("%d", *it.Item.ReorderPoint)
	}
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		cell(it.Item.Name, 4, align.Left),
		cell(it.Item.Category, 2, align.Left),
		cell(fmt.Sprintf("%d", it.Aggregate), 1, align.Right),
		cell(reorder, 1, align.Right),
		cell(fmt.Sprintf("%d %s", it.SuggestedQty, it.Item.UnitMeasure), 2, align.Right),
		cell("$"+it.EstimatedCost.StringFixed(2), 2, align.Right),
	)
}

// totalRow: costo estimado del pedido completo, alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(9).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL ESTIMADO", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(2).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1,
		})),
	)
}
