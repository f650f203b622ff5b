package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es la vista mínima del catálogo que necesita el subsistema de
// inventario. El catálogo completo (categorías, descripciones, listas de
// precios) vive en otro módulo; aquí solo llegan los campos que afectan
// al libro de existencias.
type Product struct {
	ID             string
	Name           string
	TrackInventory bool             // si es false, el motor rechaza ajustes
	MinStockAlert  *decimal.Decimal // umbral de alerta de bajo stock; nil = sin alerta
	UnitType       string           // unidad de medida: "und", "kg", "lt", ...
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
