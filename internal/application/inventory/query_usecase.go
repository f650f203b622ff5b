package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Restobar-api/internal/domain/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// MovementsPageSize tamaño de página fijo del historial de movimientos.
const MovementsPageSize = 100

// StockQueryUseCase vistas derivadas de solo lectura sobre los dos
// almacenes: historial de movimientos, resumen por sucursal y alertas de
// bajo stock. SetInitialStock es la única operación que muta, y lo hace
// delegando en el motor de ajustes.
type StockQueryUseCase struct {
	balanceRepo  repository.StockBalanceRepository
	movementRepo repository.StockMovementRepository
	adjust       *AdjustStockUseCase
}

// NewStockQueryUseCase construye la capa de consultas.
func NewStockQueryUseCase(
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
	adjust *AdjustStockUseCase,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		adjust:       adjust,
	}
}

// ListMovements devuelve el historial filtrado, del más reciente al más
// antiguo, acotado a MovementsPageSize. Sin filtros devuelve los últimos
// movimientos de todo el sistema.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return uc.movementRepo.List(ctx, filter, MovementsPageSize)
}

// BranchStockSummary calcula el resumen de inventario de una sucursal a
// partir de sus existencias activas unidas con catálogo y precio de salón.
// Productos sin control de inventario cuentan en TotalProducts pero no
// aportan valor ni alertas; productos sin precio de salón se omiten de la
// valorización.
func (uc *StockQueryUseCase) BranchStockSummary(ctx context.Context, branchID string) (*dto.BranchStockSummaryDTO, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.balanceRepo.ListBranchStock(ctx, branchID, entity.PriceTierDineIn)
	if err != nil {
		return nil, err
	}

	summary := &dto.BranchStockSummaryDTO{
		BranchID:        branchID,
		TotalStockValue: decimal.Zero,
	}
	for _, row := range rows {
		summary.TotalProducts++
		if !row.TrackInventory {
			continue
		}
		if row.Quantity.IsZero() {
			summary.OutOfStockCount++
		}
		if domaininv.IsLowStock(row.Quantity, row.MinStockAlert) {
			summary.LowStockCount++
		}
		if row.DineInPrice != nil {
			summary.TotalStockValue = summary.TotalStockValue.Add(row.Quantity.Mul(*row.DineInPrice))
		}
	}
	return summary, nil
}

// LowStockAlerts devuelve las existencias activas, con control de inventario
// y umbral configurado, cuya cantidad está bajo el umbral. Ordena por razón
// de urgencia ascendente (0 = agotado primero); a igual razón, por nombre.
func (uc *StockQueryUseCase) LowStockAlerts(ctx context.Context, branchID string) ([]dto.LowStockAlertDTO, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.balanceRepo.ListBranchStock(ctx, branchID, entity.PriceTierDineIn)
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.LowStockAlertDTO, 0)
	for _, row := range rows {
		if !row.TrackInventory {
			continue
		}
		if !domaininv.IsLowStock(row.Quantity, row.MinStockAlert) {
			continue
		}
		alerts = append(alerts, dto.LowStockAlertDTO{
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			UnitType:      row.UnitType,
			Quantity:      row.Quantity,
			MinStockAlert: *row.MinStockAlert,
			UrgencyRatio:  domaininv.UrgencyRatio(row.Quantity, *row.MinStockAlert),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if !alerts[i].UrgencyRatio.Equal(alerts[j].UrgencyRatio) {
			return alerts[i].UrgencyRatio.LessThan(alerts[j].UrgencyRatio)
		}
		return alerts[i].ProductName < alerts[j].ProductName
	})
	return alerts, nil
}

// SetInitialStock lleva la existencia a targetQuantity registrando la
// diferencia como un ajuste normal con motivo "initial stock"; no es un
// concepto aparte en el libro. El motor relee el saldo bajo el lock de fila,
// así que el movimiento resultante siempre queda encadenado de forma
// consistente.
func (uc *StockQueryUseCase) SetInitialStock(ctx context.Context, productID, branchID string, targetQuantity decimal.Decimal, actorID string) (*AdjustmentResult, error) {
	if productID == "" || branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	balance, err := uc.balanceRepo.Get(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotFound
	}
	return uc.adjust.Adjust(ctx, AdjustInput{
		ProductID: productID,
		BranchID:  branchID,
		Delta:     targetQuantity.Sub(balance.Quantity),
		Reason:    entity.ReasonInitialStock,
		ActorID:   actorID,
	})
}
