package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo lectura de la lista de precios por sucursal (colaborador
// externo; los precios se administran en otro módulo).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// GetPrice obtiene el precio vigente de un producto en una sucursal para un
// nivel; (nil, nil) si el producto no tiene precio en ese nivel.
func (r *PriceRepo) GetPrice(ctx context.Context, productID, branchID, tier string) (*decimal.Decimal, error) {
	query := `
		SELECT price FROM product_prices
		WHERE product_id = $1 AND branch_id = $2 AND tier = $3`
	var price decimal.Decimal
	err := r.q.QueryRow(ctx, query, productID, branchID, tier).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStorageErr("get product price", err)
	}
	return &price, nil
}
