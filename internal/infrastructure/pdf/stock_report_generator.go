// Package pdf genera el reporte imprimible de inventario por sucursal
// (herramienta administrativa; lee las mismas vistas que la API).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sucursal + fecha de corte                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / bajo stock / agotados / valorización   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Unidad | Existencia | Umbral | Valor      │
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

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator genera el PDF de inventario de sucursal con Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateBranchStockPDF genera el reporte y devuelve sus bytes.
func (g *StockReportGenerator) GenerateBranchStockPDF(
	branch *entity.Branch,
	summary *dto.BranchStockSummaryDTO,
	rows []repository.BranchStockRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventario de sucursal", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(branch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(branch *entity.Branch) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Inventario — "+branch.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Corte: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func summaryRow(summary *dto.BranchStockSummaryDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray}),
			text.New(value, props.Text{Size: 11, Style: fontstyle.Bold, Top: 4}),
		)
	}
	return row.New(12).Add(
		cell("Productos", fmt.Sprintf("%d", summary.TotalProducts)),
		cell("Bajo stock", fmt.Sprintf("%d", summary.LowStockCount)),
		cell("Agotados", fmt.Sprintf("%d", summary.OutOfStockCount)),
		cell("Valorización", "$ "+summary.TotalStockValue.StringFixed(2)),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(7).Add(
		col.New(5).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Unidad", header)),
		col.New(2).Add(text.New("Existencia", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right})),
		col.New(1).Add(text.New("Umbral", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right})),
		col.New(2).Add(text.New("Valor", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right})),
	)
}

func tableDetailRow(r repository.BranchStockRow) core.Row {
	threshold := "—"
	if r.MinStockAlert != nil {
		threshold = r.MinStockAlert.String()
	}
	value := "—"
	if r.DineInPrice != nil && r.TrackInventory {
		value = r.Quantity.Mul(*r.DineInPrice).StringFixed(2)
	}
	return row.New(6).Add(
		col.New(5).Add(text.New(r.ProductName, props.Text{Size: 8})),
		col.New(2).Add(text.New(r.UnitType, props.Text{Size: 8, Color: colorGray})),
		col.New(2).Add(text.New(r.Quantity.String(), props.Text{Size: 8, Align: align.Right})),
		col.New(1).Add(text.New(threshold, props.Text{Size: 8, Align: align.Right})),
		col.New(2).Add(text.New(value, props.Text{Size: 8, Align: align.Right})),
	)
}
