package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Restobar-api/internal/domain"
)

// Querier abstrae pool y tx: los repositorios funcionan igual con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// wrapStorageErr envuelve errores de pgx con el error de dominio que
// corresponde: conflictos de serialización/deadlock quedan marcados como
// ErrStorageConflict (elegibles para reintento acotado en el motor).
func wrapStorageErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s: %w", op, domain.ErrStorageConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
