package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// maxConflictRetries reintentos automáticos ante ErrStorageConflict (la
// transacción completa se reejecuta releyendo el saldo bajo el lock).
const maxConflictRetries = 3

// AdjustInput entrada para un ajuste de existencias sobre una pareja
// (producto, sucursal).
type AdjustInput struct {
	ProductID         string
	BranchID          string
	Delta             decimal.Decimal
	Reason            string
	Notes             string
	ExternalReference string
	ActorID           string
}

// AdjustmentResult saldo actualizado + movimiento creado por un ajuste.
type AdjustmentResult struct {
	Balance  *entity.StockBalance
	Movement *entity.StockMovement
}

// AdjustStockUseCase es el motor de ajustes: valida, bloquea la fila del
// saldo (SELECT FOR UPDATE), actualiza la existencia y agrega el movimiento
// al libro, todo dentro de una transacción con Commit/Rollback.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	invalidator ViewInvalidator // puede ser nil (sin caché configurada)
}

// NewAdjustStockUseCase construye el motor. invalidator puede ser nil.
func NewAdjustStockUseCase(txRunner TxRunner, invalidator ViewInvalidator) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, invalidator: invalidator}
}

// Adjust aplica un ajuste atómico. Orden de validación: existencia de la
// pareja (ErrNotFound), control de inventario del producto
// (ErrTrackingDisabled) y no-negatividad del resultado (NegativeStockError).
// Ningún error deja mutación parcial. La operación NO es idempotente: cada
// llamada agrega un movimiento al libro, incluso con delta cero.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustInput) (*AdjustmentResult, error) {
	if input.ProductID == "" || input.BranchID == "" || strings.TrimSpace(input.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *AdjustmentResult
	err := runWithConflictRetry(ctx, uc.txRunner, func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		r, err := applyAdjustment(ctx, balanceRepo, movementRepo, productRepo, input, time.Now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.invalidator != nil {
		uc.invalidator.InvalidateBranchStock(ctx, input.BranchID)
	}
	return result, nil
}

// Deactivate da de baja lógica la existencia de un producto en una sucursal.
// La fila y su historial de movimientos se conservan; solo deja de aparecer
// en las vistas de la sucursal.
func (uc *AdjustStockUseCase) Deactivate(ctx context.Context, productID, branchID string) error {
	if productID == "" || branchID == "" {
		return domain.ErrInvalidInput
	}

	err := runWithConflictRetry(ctx, uc.txRunner, func(
		balanceRepo repository.StockBalanceRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(ctx, productID, branchID)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrNotFound
		}
		return balanceRepo.Deactivate(ctx, productID, branchID)
	})
	if err != nil {
		return err
	}

	if uc.invalidator != nil {
		uc.invalidator.InvalidateBranchStock(ctx, branchID)
	}
	return nil
}

// applyAdjustment ejecuta un ajuste con los repositorios atados a la
// transacción del llamador. Lo comparte el ajuste individual y el masivo.
func applyAdjustment(
	ctx context.Context,
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input AdjustInput,
	now time.Time,
) (*AdjustmentResult, error) {
	// Bloquea la fila del saldo: dos ajustes concurrentes sobre la misma
	// pareja se serializan aquí y ninguno pierde el delta del otro.
	balance, err := balanceRepo.GetForUpdate(ctx, input.ProductID, input.BranchID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotFound
	}

	product, err := productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.TrackInventory {
		return nil, domain.ErrTrackingDisabled
	}

	previous := balance.Quantity
	resulting := previous.Add(input.Delta)
	if resulting.IsNegative() {
		return nil, &domain.NegativeStockError{
			ProductID: input.ProductID,
			BranchID:  input.BranchID,
			Requested: input.Delta,
			Available: previous,
		}
	}

	balance.Quantity = resulting
	balance.UpdatedAt = now
	if input.Delta.IsPositive() {
		restocked := now
		balance.LastRestockedAt = &restocked
	}
	if err := balanceRepo.Update(ctx, balance); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:                uuid.New().String(),
		ProductID:         input.ProductID,
		BranchID:          input.BranchID,
		Delta:             input.Delta,
		PreviousQuantity:  previous,
		ResultingQuantity: resulting,
		Reason:            input.Reason,
		Notes:             input.Notes,
		ExternalReference: input.ExternalReference,
		CreatedBy:         input.ActorID,
		CreatedAt:         now,
	}
	if err := movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	return &AdjustmentResult{Balance: balance, Movement: movement}, nil
}

// runWithConflictRetry ejecuta la transacción y la reintenta (acotado) solo
// ante ErrStorageConflict; cualquier otro error se devuelve de inmediato.
func runWithConflictRetry(ctx context.Context, txRunner TxRunner, fn func(
	repository.StockBalanceRepository,
	repository.StockMovementRepository,
	repository.ProductRepository,
) error) error {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = txRunner.Run(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrStorageConflict) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
