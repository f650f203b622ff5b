package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

// MovementFilter filtra el historial de movimientos. Todos los campos son
// opcionales; un filtro vacío devuelve los movimientos más recientes de todo
// el sistema.
type MovementFilter struct {
	ProductID      string
	BranchID       string
	ReasonContains string // subcadena, sin distinguir mayúsculas
	From           *time.Time
	To             *time.Time
}

// StockMovementRepository define el puerto del libro de movimientos
// (append-only: solo Create y lecturas).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve movimientos del más reciente al más antiguo, hasta limit.
	List(ctx context.Context, filter MovementFilter, limit int) ([]*entity.StockMovement, error)
}
