package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

const balanceColumns = `product_id, branch_id, quantity, min_threshold, max_threshold, last_restocked_at, active, updated_at`

// Get obtiene la existencia de un producto en una sucursal; (nil, nil) si no existe.
func (r *StockBalanceRepo) Get(ctx context.Context, productID, branchID string) (*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances WHERE product_id = $1 AND branch_id = $2`
	return r.scanOne(ctx, query, productID, branchID, "get stock balance")
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE)
// para serializar ajustes concurrentes sobre la misma pareja.
func (r *StockBalanceRepo) GetForUpdate(ctx context.Context, productID, branchID string) (*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances WHERE product_id = $1 AND branch_id = $2
		FOR UPDATE`
	return r.scanOne(ctx, query, productID, branchID, "get stock balance for update")
}

func (r *StockBalanceRepo) scanOne(ctx context.Context, query, productID, branchID, op string) (*entity.StockBalance, error) {
	var b entity.StockBalance
	err := r.q.QueryRow(ctx, query, productID, branchID).Scan(
		&b.ProductID, &b.BranchID, &b.Quantity,
		&b.MinThreshold, &b.MaxThreshold, &b.LastRestockedAt,
		&b.Active, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStorageErr(op, err)
	}
	return &b, nil
}

// Update persiste la existencia mutada por el motor de ajustes.
func (r *StockBalanceRepo) Update(ctx context.Context, balance *entity.StockBalance) error {
	query := `
		UPDATE stock_balances
		SET quantity = $3, last_restocked_at = $4, updated_at = $5
		WHERE product_id = $1 AND branch_id = $2`
	tag, err := r.q.Exec(ctx, query,
		balance.ProductID, balance.BranchID,
		balance.Quantity, balance.LastRestockedAt, balance.UpdatedAt,
	)
	if err != nil {
		return wrapStorageErr("update stock balance", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock balance: fila inexistente %s/%s", balance.ProductID, balance.BranchID)
	}
	return nil
}

// Deactivate marca la existencia como inactiva (baja lógica; la fila y su
// historial de movimientos se conservan).
func (r *StockBalanceRepo) Deactivate(ctx context.Context, productID, branchID string) error {
	query := `
		UPDATE stock_balances SET active = false, updated_at = now()
		WHERE product_id = $1 AND branch_id = $2`
	if _, err := r.q.Exec(ctx, query, productID, branchID); err != nil {
		return wrapStorageErr("deactivate stock balance", err)
	}
	return nil
}

// ListBranchStock devuelve las existencias activas de una sucursal unidas
// con catálogo y el precio del nivel indicado (LEFT JOIN: un producto sin
// precio llega con DineInPrice nil y se excluye de la valorización).
func (r *StockBalanceRepo) ListBranchStock(ctx context.Context, branchID, priceTier string) ([]repository.BranchStockRow, error) {
	query := `
		SELECT
			b.product_id,
			p.name,
			p.unit_type,
			b.quantity,
			p.track_inventory,
			p.min_stock_alert,
			pp.price,
			b.last_restocked_at
		FROM stock_balances b
		JOIN products p ON p.id = b.product_id
		LEFT JOIN product_prices pp
			ON pp.product_id = b.product_id AND pp.branch_id = b.branch_id AND pp.tier = $2
		WHERE b.branch_id = $1 AND b.active = true
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, branchID, priceTier)
	if err != nil {
		return nil, wrapStorageErr("list branch stock", err)
	}
	defer rows.Close()

	var list []repository.BranchStockRow
	for rows.Next() {
		var row repository.BranchStockRow
		if err := rows.Scan(
			&row.ProductID, &row.ProductName, &row.UnitType, &row.Quantity,
			&row.TrackInventory, &row.MinStockAlert, &row.DineInPrice,
			&row.LastRestockedAt,
		); err != nil {
			return nil, fmt.Errorf("scan branch stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
