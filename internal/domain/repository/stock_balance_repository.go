package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

// BranchStockRow es la fila cruda que devuelve el repositorio para las vistas
// por sucursal: existencia + datos de catálogo y precio ya unidos en la
// consulta. Los cálculos (conteos, valorización, urgencia) se hacen en la
// capa de aplicación.
type BranchStockRow struct {
	ProductID       string
	ProductName     string
	UnitType        string
	Quantity        decimal.Decimal
	TrackInventory  bool
	MinStockAlert   *decimal.Decimal
	DineInPrice     *decimal.Decimal // nil si la sucursal no tiene precio de salón para el producto
	LastRestockedAt *time.Time
}

// StockBalanceRepository define el puerto de existencias por (producto, sucursal).
// Get y GetForUpdate devuelven (nil, nil) cuando la pareja no existe.
type StockBalanceRepository interface {
	Get(ctx context.Context, productID, branchID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la transacción
	// actual para serializar ajustes concurrentes sobre la misma pareja.
	GetForUpdate(ctx context.Context, productID, branchID string) (*entity.StockBalance, error)
	Update(ctx context.Context, balance *entity.StockBalance) error
	Deactivate(ctx context.Context, productID, branchID string) error

	// ListBranchStock devuelve todas las existencias activas de una sucursal
	// unidas con el catálogo y el precio del nivel indicado.
	ListBranchStock(ctx context.Context, branchID, priceTier string) ([]BranchStockRow, error)
}
