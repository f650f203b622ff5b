package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// BulkAdjustUseCase aplica una lista ordenada de ajustes como una unidad
// todo-o-nada: un lote suele representar un solo evento real (una entrega
// que toca varios productos, una reconciliación) y una aplicación parcial
// dejaría el libro en un estado que no corresponde a ningún evento.
type BulkAdjustUseCase struct {
	txRunner    TxRunner
	invalidator ViewInvalidator
}

// NewBulkAdjustUseCase construye el coordinador de ajustes masivos.
func NewBulkAdjustUseCase(txRunner TxRunner, invalidator ViewInvalidator) *BulkAdjustUseCase {
	return &BulkAdjustUseCase{txRunner: txRunner, invalidator: invalidator}
}

// AdjustMany ejecuta cada ítem dentro de una única transacción, en el orden
// recibido y con el mismo bloqueo por fila del ajuste individual. Ante el
// primer fallo —de validación o de invariante— la transacción completa se
// revierte, incluidos los ítems anteriores que sí habrían pasado, y se
// devuelve BatchAbortedError identificando al ítem culpable. En éxito
// devuelve los resultados en el mismo orden que la entrada.
func (uc *BulkAdjustUseCase) AdjustMany(ctx context.Context, items []AdjustInput) ([]AdjustmentResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range items {
		if item.ProductID == "" || item.BranchID == "" || item.Reason == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	var results []AdjustmentResult
	err := runWithConflictRetry(ctx, uc.txRunner, func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// El callback puede reejecutarse en un reintento por conflicto:
		// se parte siempre de una lista limpia.
		results = make([]AdjustmentResult, 0, len(items))
		now := time.Now()
		for i, item := range items {
			r, err := applyAdjustment(ctx, balanceRepo, movementRepo, productRepo, item, now)
			if err != nil {
				return &domain.BatchAbortedError{
					Index:     i,
					ProductID: item.ProductID,
					BranchID:  item.BranchID,
					Err:       err,
				}
			}
			results = append(results, *r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.invalidator != nil {
		for _, branchID := range distinctBranches(items) {
			uc.invalidator.InvalidateBranchStock(ctx, branchID)
		}
	}
	return results, nil
}

func distinctBranches(items []AdjustInput) []string {
	seen := make(map[string]struct{}, len(items))
	var branches []string
	for _, item := range items {
		if _, ok := seen[item.BranchID]; ok {
			continue
		}
		seen[item.BranchID] = struct{}{}
		branches = append(branches, item.BranchID)
	}
	return branches
}
