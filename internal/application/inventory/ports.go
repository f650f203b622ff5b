package inventory

import (
	"context"

	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es el límite transaccional explícito del
// motor de ajustes: todo lo que fn escriba se confirma o se revierte junto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ViewInvalidator notifica que las vistas de inventario de una sucursal
// cambiaron, para que las cachés dependientes se refresquen. Se invoca fuera
// de la transacción, después del commit, y es best-effort: un fallo aquí
// nunca afecta el resultado del ajuste.
type ViewInvalidator interface {
	InvalidateBranchStock(ctx context.Context, branchID string)
}
