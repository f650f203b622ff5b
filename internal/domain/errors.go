package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrTrackingDisabled   = errors.New("el producto no maneja control de inventario")
	ErrStorageConflict    = errors.New("conflicto de escritura concurrente")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)

// NegativeStockError se devuelve cuando un ajuste dejaría la existencia por
// debajo de cero. No se realiza ninguna mutación. Lleva las cantidades para
// que el llamador pueda reintentar con un delta menor.
type NegativeStockError struct {
	ProductID string
	BranchID  string
	Requested decimal.Decimal // delta solicitado (negativo)
	Available decimal.Decimal // existencia actual
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf(
		"ajuste rechazado: delta %s dejaría el stock de %s en sucursal %s bajo cero (disponible %s)",
		e.Requested, e.ProductID, e.BranchID, e.Available,
	)
}

// BatchAbortedError indica que un ajuste masivo se revirtió por completo.
// Identifica el ítem que falló (posición y pareja producto/sucursal) y
// envuelve su causa; Unwrap permite errors.Is/As sobre el error original.
type BatchAbortedError struct {
	Index     int // posición del ítem que falló (base 0)
	ProductID string
	BranchID  string
	Err       error
}

func (e *BatchAbortedError) Error() string {
	return fmt.Sprintf(
		"ajuste masivo abortado en el ítem %d (%s/%s): %v",
		e.Index, e.ProductID, e.BranchID, e.Err,
	)
}

func (e *BatchAbortedError) Unwrap() error { return e.Err }
