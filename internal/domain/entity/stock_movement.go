package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento más comunes (el campo es texto libre).
const (
	ReasonInitialStock     = "initial stock"
	ReasonManualCorrection = "manual correction"
	ReasonSale             = "sale"
	ReasonPurchase         = "purchase"
)

// StockMovement es un registro inmutable del libro de existencias: captura el
// saldo antes y después de un ajuste. Se crea en la misma transacción que
// actualiza el StockBalance y nunca se edita ni se borra.
// Invariante: ResultingQuantity = PreviousQuantity + Delta.
type StockMovement struct {
	ID                string
	ProductID         string
	BranchID          string
	Delta             decimal.Decimal // positivo = entrada, negativo = salida
	PreviousQuantity  decimal.Decimal
	ResultingQuantity decimal.Decimal
	Reason            string
	Notes             string
	ExternalReference string // referencia externa (orden, remisión, conteo)
	CreatedBy         string // actor que originó el movimiento; puede ser vacío
	CreatedAt         time.Time
}
