package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/excel"
)

func TestExport_GeneraHojaConMovimientos(t *testing.T) {
	movements := []*entity.StockMovement{
		{
			ID:                "mov-2",
			ProductID:         "prod-cerveza",
			BranchID:          "suc-centro",
			Delta:             decimal.NewFromInt(-2),
			PreviousQuantity:  decimal.RequireFromString("5.5"),
			ResultingQuantity: decimal.RequireFromString("3.5"),
			Reason:            entity.ReasonSale,
			CreatedBy:         "user-1",
			CreatedAt:         time.Date(2026, 8, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:                "mov-1",
			ProductID:         "prod-cerveza",
			BranchID:          "suc-centro",
			Delta:             decimal.RequireFromString("5.5"),
			ResultingQuantity: decimal.RequireFromString("5.5"),
			Reason:            entity.ReasonInitialStock,
			ExternalReference: "carga-inicial",
			CreatedAt:         time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	data, err := excel.NewMovementExporter().Export(movements)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Movimientos")
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado + dos movimientos")

	assert.Equal(t, "Fecha", rows[0][0])
	assert.Equal(t, "Motivo", rows[0][6])

	// Se respeta el orden recibido (más reciente primero).
	assert.Equal(t, "2026-08-15 12:30:00", rows[1][0])
	assert.Equal(t, "-2", rows[1][3])
	assert.Equal(t, "3.5", rows[1][5])
	assert.Equal(t, entity.ReasonSale, rows[1][6])
	assert.Equal(t, entity.ReasonInitialStock, rows[2][6])
}

func TestExport_SinMovimientosSoloEncabezado(t *testing.T) {
	data, err := excel.NewMovementExporter().Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Movimientos")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
