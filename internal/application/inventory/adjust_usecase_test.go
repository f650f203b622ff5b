package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

const (
	productCerveza  = "prod-cerveza"
	productServicio = "prod-servicio" // sin control de inventario
	branchCentro    = "suc-centro"
)

func seedStore() *memStore {
	store := newMemStore()
	store.seedProduct(&entity.Product{
		ID:             productCerveza,
		Name:           "Cerveza artesanal",
		TrackInventory: true,
		UnitType:       "unidad",
		Active:         true,
	})
	store.seedProduct(&entity.Product{
		ID:             productServicio,
		Name:           "Servicio de mesa",
		TrackInventory: false,
		UnitType:       "unidad",
		Active:         true,
	})
	store.seedBalance(&entity.StockBalance{
		ProductID: productCerveza,
		BranchID:  branchCentro,
		Quantity:  decimal.Zero,
		Active:    true,
	})
	store.seedBalance(&entity.StockBalance{
		ProductID: productServicio,
		BranchID:  branchCentro,
		Quantity:  decimal.Zero,
		Active:    true,
	})
	return store
}

func newAdjustUC(store *memStore) (*inventory.AdjustStockUseCase, *memTxRunner, *memInvalidator) {
	runner := newMemTxRunner(store)
	invalidator := &memInvalidator{}
	return inventory.NewAdjustStockUseCase(runner, invalidator), runner, invalidator
}

func adjust(t *testing.T, uc *inventory.AdjustStockUseCase, productID, delta, reason string) *inventory.AdjustmentResult {
	t.Helper()
	result, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: productID,
		BranchID:  branchCentro,
		Delta:     decimal.RequireFromString(delta),
		Reason:    reason,
		ActorID:   "user-1",
	})
	require.NoError(t, err)
	return result
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste individual
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_EscenarioInicialVentaYRechazo(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)
	ctx := context.Background()

	// Stock inicial: 0 → 5.5
	r1 := adjust(t, uc, productCerveza, "5.5", entity.ReasonInitialStock)
	assert.True(t, r1.Balance.Quantity.Equal(decimal.RequireFromString("5.5")))
	assert.True(t, r1.Movement.PreviousQuantity.IsZero())
	assert.True(t, r1.Movement.ResultingQuantity.Equal(decimal.RequireFromString("5.5")))

	// Venta: 5.5 → 3.5
	r2 := adjust(t, uc, productCerveza, "-2", entity.ReasonSale)
	assert.True(t, r2.Balance.Quantity.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, r2.Movement.PreviousQuantity.Equal(decimal.RequireFromString("5.5")))

	// Retiro mayor al disponible: rechazado sin mutar nada.
	_, err := uc.Adjust(ctx, inventory.AdjustInput{
		ProductID: productCerveza,
		BranchID:  branchCentro,
		Delta:     decimal.RequireFromString("-10"),
		Reason:    entity.ReasonSale,
	})
	var negErr *domain.NegativeStockError
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, productCerveza, negErr.ProductID)
	assert.Equal(t, branchCentro, negErr.BranchID)
	assert.True(t, negErr.Requested.Equal(decimal.RequireFromString("-10")))
	assert.True(t, negErr.Available.Equal(decimal.RequireFromString("3.5")))

	// El saldo y el libro quedan como antes del rechazo.
	final, err := (&memBalanceRepo{store}).Get(ctx, productCerveza, branchCentro)
	require.NoError(t, err)
	assert.True(t, final.Quantity.Equal(decimal.RequireFromString("3.5")))
	assert.Len(t, store.movements, 2)
}

func TestAdjust_NoEsIdempotente(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)

	// Reenviar el mismo ajuste (misma referencia externa incluida) lo aplica
	// dos veces: el libro registra eventos, no solicitudes.
	input := inventory.AdjustInput{
		ProductID:         productCerveza,
		BranchID:          branchCentro,
		Delta:             decimal.NewFromInt(3),
		Reason:            entity.ReasonPurchase,
		ExternalReference: "factura-001",
	}
	_, err := uc.Adjust(context.Background(), input)
	require.NoError(t, err)
	result, err := uc.Adjust(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, result.Balance.Quantity.Equal(decimal.NewFromInt(6)))
	assert.Len(t, store.movements, 2)
}

func TestAdjust_ProductoSinControlDeInventario(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: productServicio,
		BranchID:  branchCentro,
		Delta:     decimal.NewFromInt(1),
		Reason:    entity.ReasonPurchase,
	})
	require.ErrorIs(t, err, domain.ErrTrackingDisabled)
	assert.Empty(t, store.movements)
}

func TestAdjust_ParejaInexistente(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: productCerveza,
		BranchID:  "suc-fantasma",
		Delta:     decimal.NewFromInt(1),
		Reason:    entity.ReasonPurchase,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_EntradaInvalida(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)

	cases := []inventory.AdjustInput{
		{BranchID: branchCentro, Delta: decimal.NewFromInt(1), Reason: "compra"},
		{ProductID: productCerveza, Delta: decimal.NewFromInt(1), Reason: "compra"},
		{ProductID: productCerveza, BranchID: branchCentro, Delta: decimal.NewFromInt(1), Reason: "   "},
	}
	for _, input := range cases {
		_, err := uc.Adjust(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, store.movements)
}

func TestAdjust_DeltaCeroRegistraMovimiento(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)

	result := adjust(t, uc, productCerveza, "0", "conteo físico sin diferencia")
	assert.True(t, result.Movement.Delta.IsZero())
	assert.True(t, result.Balance.Quantity.IsZero())
	assert.Len(t, store.movements, 1)
}

func TestAdjust_LastRestockedSoloConDeltaPositivo(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)
	ctx := context.Background()
	repo := &memBalanceRepo{store}

	adjust(t, uc, productCerveza, "10", entity.ReasonPurchase)
	afterPurchase, err := repo.Get(ctx, productCerveza, branchCentro)
	require.NoError(t, err)
	require.NotNil(t, afterPurchase.LastRestockedAt)
	restockedAt := *afterPurchase.LastRestockedAt

	adjust(t, uc, productCerveza, "-4", entity.ReasonSale)
	afterSale, err := repo.Get(ctx, productCerveza, branchCentro)
	require.NoError(t, err)
	require.NotNil(t, afterSale.LastRestockedAt)
	assert.True(t, afterSale.LastRestockedAt.Equal(restockedAt), "una salida no debe mover last_restocked_at")
}

func TestAdjust_CadenaDelLibroEsContinua(t *testing.T) {
	store := seedStore()
	uc, _, _ := newAdjustUC(store)

	deltas := []string{"10", "-3", "0", "7.25", "-1.5", "-2"}
	for _, d := range deltas {
		adjust(t, uc, productCerveza, d, "ajuste")
	}

	// Cada movimiento arranca donde terminó el anterior y el saldo final
	// coincide con la última cantidad resultante.
	prev := decimal.Zero
	for _, m := range store.movements {
		assert.True(t, m.PreviousQuantity.Equal(prev))
		assert.True(t, m.ResultingQuantity.Equal(prev.Add(m.Delta)))
		prev = m.ResultingQuantity
	}
	balance, err := (&memBalanceRepo{store}).Get(context.Background(), productCerveza, branchCentro)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(prev))
}

func TestAdjust_NotificaInvalidacionDeSucursal(t *testing.T) {
	store := seedStore()
	uc, _, invalidator := newAdjustUC(store)

	adjust(t, uc, productCerveza, "5", entity.ReasonPurchase)
	assert.Equal(t, []string{branchCentro}, invalidator.branches)
}

func TestDeactivate_BajaLogicaConservaHistorial(t *testing.T) {
	store := seedStore()
	uc, _, invalidator := newAdjustUC(store)
	ctx := context.Background()

	adjust(t, uc, productCerveza, "5", entity.ReasonPurchase)
	require.NoError(t, uc.Deactivate(ctx, productCerveza, branchCentro))

	balance, err := (&memBalanceRepo{store}).Get(ctx, productCerveza, branchCentro)
	require.NoError(t, err)
	assert.False(t, balance.Active)
	assert.Len(t, store.movements, 1, "la baja no toca el libro")
	assert.Equal(t, []string{branchCentro, branchCentro}, invalidator.branches)
}

func TestDeactivate_ParejaInexistente(t *testing.T) {
	uc, _, _ := newAdjustUC(seedStore())
	err := uc.Deactivate(context.Background(), productCerveza, "suc-fantasma")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos por conflicto de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ReintentaTrasConflicto(t *testing.T) {
	store := seedStore()
	runner := newMemTxRunner(store)
	runner.failures = []error{
		fmt.Errorf("commit: %w", domain.ErrStorageConflict),
		fmt.Errorf("commit: %w", domain.ErrStorageConflict),
	}
	uc := inventory.NewAdjustStockUseCase(runner, nil)

	result, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: productCerveza,
		BranchID:  branchCentro,
		Delta:     decimal.NewFromInt(5),
		Reason:    entity.ReasonPurchase,
	})
	require.NoError(t, err)
	assert.True(t, result.Balance.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 3, runner.runs, "dos conflictos + un intento exitoso")
	// Los intentos abortados no dejan movimientos duplicados.
	assert.Len(t, store.movements, 1)
}

func TestAdjust_ConflictoPersistenteSeRinde(t *testing.T) {
	store := seedStore()
	runner := newMemTxRunner(store)
	for i := 0; i < 10; i++ {
		runner.failures = append(runner.failures, fmt.Errorf("commit: %w", domain.ErrStorageConflict))
	}
	uc := inventory.NewAdjustStockUseCase(runner, nil)

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: productCerveza,
		BranchID:  branchCentro,
		Delta:     decimal.NewFromInt(5),
		Reason:    entity.ReasonPurchase,
	})
	require.ErrorIs(t, err, domain.ErrStorageConflict)
	assert.Equal(t, 4, runner.runs, "intento original + reintentos acotados")
}

func TestAdjust_NoReintentaOtrosErrores(t *testing.T) {
	store := seedStore()
	runner := newMemTxRunner(store)
	runner.failures = []error{errors.New("fallo irrecuperable")}
	uc := inventory.NewAdjustStockUseCase(runner, nil)

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: productCerveza,
		BranchID:  branchCentro,
		Delta:     decimal.NewFromInt(5),
		Reason:    entity.ReasonPurchase,
	})
	require.Error(t, err)
	assert.Equal(t, 1, runner.runs)
}
