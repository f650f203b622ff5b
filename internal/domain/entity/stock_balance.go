package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance representa la existencia actual de un producto en una sucursal.
// Es una proyección materializada de la cadena de movimientos: su Quantity
// siempre debe coincidir con el ResultingQuantity del último StockMovement
// de la pareja (producto, sucursal). Solo el motor de ajustes la muta.
type StockBalance struct {
	ProductID       string
	BranchID        string
	Quantity        decimal.Decimal
	MinThreshold    *decimal.Decimal // umbral informativo, no se aplica como límite duro
	MaxThreshold    *decimal.Decimal
	LastRestockedAt *time.Time // solo se actualiza con deltas estrictamente positivos
	Active          bool       // baja lógica; nunca se borra la fila
	UpdatedAt       time.Time
}
