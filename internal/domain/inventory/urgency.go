package inventory

import "github.com/shopspring/decimal"

// IsLowStock indica si una existencia está bajo su umbral de alerta.
// Un producto sin umbral configurado (nil o <= 0) nunca genera alerta.
func IsLowStock(quantity decimal.Decimal, threshold *decimal.Decimal) bool {
	if threshold == nil || !threshold.IsPositive() {
		return false
	}
	return quantity.LessThan(*threshold)
}

// UrgencyRatio calcula quantity / threshold para ordenar alertas de bajo
// stock: 0 es lo más urgente (agotado) y valores cercanos a 1 lo menos.
// El llamador debe garantizar threshold > 0 (IsLowStock ya lo filtra).
func UrgencyRatio(quantity, threshold decimal.Decimal) decimal.Decimal {
	return quantity.Div(threshold)
}
