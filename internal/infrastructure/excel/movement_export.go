// Package excel exporta el historial de movimientos a XLSX para las
// herramientas administrativas (conciliaciones, auditoría externa).
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

const sheetName = "Movimientos"

// MovementExporter genera un archivo XLSX con movimientos del libro.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// Export devuelve los bytes del XLSX con una fila por movimiento, del más
// reciente al más antiguo (orden en que llega la lista).
func (e *MovementExporter) Export(movements []*entity.StockMovement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Fecha", "Producto", "Sucursal", "Delta",
		"Saldo anterior", "Saldo resultante", "Motivo",
		"Notas", "Referencia", "Actor",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: encabezado %s: %w", h, err)
		}
	}

	for i, m := range movements {
		rowNo := i + 2
		values := []any{
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			m.ProductID,
			m.BranchID,
			m.Delta.String(),
			m.PreviousQuantity.String(),
			m.ResultingQuantity.String(),
			m.Reason,
			m.Notes,
			m.ExternalReference,
			m.CreatedBy,
		}
		for colNo, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colNo+1, rowNo)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", rowNo, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
