package repository

import (
	"context"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

// BranchRepository es el puerto de solo lectura hacia las sucursales.
// GetByID devuelve (nil, nil) si la sucursal no existe.
type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
}
