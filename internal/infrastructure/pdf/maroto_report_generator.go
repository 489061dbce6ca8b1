// Package pdf implementa la generación del reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Rango del reporte           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ventas / unidades / ingreso total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ventas por categoría                                 │
//	│  TABLA: Ventas por método de pago                            │
//	│  TABLA: Ventas por bodega                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jmorales-dev/granolapp-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 76, Green: 111, Blue: 47}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.SalesReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	businessName string
}

// NewMarotoReportGenerator construye el generador con el nombre del negocio
// que encabeza cada reporte.
func NewMarotoReportGenerator(businessName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{businessName: businessName}
}

// GenerateSalesReport genera el PDF del resumen de ventas y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(_ context.Context, summary *reports.SalesSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.businessName, summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRows("Ventas por categoría", summary.ByCategory)...)
	m.AddRows(sectionRows("Ventas por método de pago", summary.ByPaymentMethod)...)
	m.AddRows(sectionRows("Ventas por bodega", summary.ByWarehouse)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y rango del reporte (der).
func headerRow(businessName string, summary *reports.SalesSummary) core.Row {
	rango := summary.From.Format("02/01/2006") + " – " + summary.To.Format("02/01/2006")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: totales del período.
func summaryRow(summary *reports.SalesSummary) core.Row {
	metric := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		metric("VENTAS", strconv.Itoa(summary.SaleCount)),
		metric("UNIDADES", summary.TotalUnits.StringFixed(0)),
		metric("INGRESO TOTAL", "$"+formatMoney(summary.TotalRevenue.StringFixed(0))),
	)
}

// sectionRows: título de sección + cabecera + una fila por grupo.
func sectionRows(title string, groups []reports.GroupTotal) []core.Row {
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
			}),
		)),
		tableHeaderRow(),
	}
	for _, g := range groups {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(g.Key, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(g.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.Units.StringFixed(0), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(g.Total.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	if len(groups) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin datos en el período", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
		)))
	}
	rows = append(rows, line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	return rows
}

// tableHeaderRow: cabecera de las tablas de grupos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Grupo", 6, align.Left),
		h("Ventas", 2, align.Center),
		h("Unidades", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

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
