package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceRepository es el puerto de solo lectura hacia la lista de precios por
// sucursal (colaborador externo). GetPrice devuelve (nil, nil) cuando el
// producto no tiene precio para ese nivel en esa sucursal.
type PriceRepository interface {
	GetPrice(ctx context.Context, productID, branchID, tier string) (*decimal.Decimal, error)
}
