package entity

import "github.com/shopspring/decimal"

// Niveles de precio por sucursal. La valorización de inventario usa el
// precio de salón (dine-in).
const (
	PriceTierDineIn   = "dine-in"
	PriceTierTakeAway = "take-away"
	PriceTierDelivery = "delivery"
)

// ProductPrice es el precio vigente de un producto en una sucursal para un
// nivel dado. La administración de precios pertenece a otro módulo; este
// subsistema solo la consulta.
type ProductPrice struct {
	ProductID string
	BranchID  string
	Tier      string
	Price     decimal.Decimal
}
