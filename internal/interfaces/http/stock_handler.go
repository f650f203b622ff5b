package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP del libro de existencias (protegido).
type StockHandler struct {
	adjust *inventory.AdjustStockUseCase
	bulk   *inventory.BulkAdjustUseCase
	query  *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	adjust *inventory.AdjustStockUseCase,
	bulk *inventory.BulkAdjustUseCase,
	query *inventory.StockQueryUseCase,
) *StockHandler {
	return &StockHandler{adjust: adjust, bulk: bulk, query: query}
}

// Adjust godoc
// @Summary      Ajustar existencia de un producto en una sucursal
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, branch_id, delta, reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.adjust.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:         in.ProductID,
		BranchID:          in.BranchID,
		Delta:             in.Delta,
		Reason:            in.Reason,
		Notes:             in.Notes,
		ExternalReference: in.ExternalReference,
		ActorID:           GetUserID(c),
	})
	if err != nil {
		return stockErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(adjustmentResponse(result))
}

// BulkAdjust godoc
// @Summary      Ajuste masivo todo-o-nada
// @Description  Aplica la lista en orden dentro de una sola transacción; si
//
//	un ítem falla, ninguno queda aplicado.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustRequest  true  "items"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments/bulk [post]
func (h *StockHandler) BulkAdjust(c *fiber.Ctx) error {
	var in dto.BulkAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.AdjustInput, 0, len(in.Items))
	actorID := GetUserID(c)
	for _, item := range in.Items {
		items = append(items, inventory.AdjustInput{
			ProductID:         item.ProductID,
			BranchID:          item.BranchID,
			Delta:             item.Delta,
			Reason:            item.Reason,
			Notes:             item.Notes,
			ExternalReference: item.ExternalReference,
			ActorID:           actorID,
		})
	}
	results, err := h.bulk.AdjustMany(c.Context(), items)
	if err != nil {
		return stockErrorResponse(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(results))
	for i := range results {
		out = append(out, adjustmentResponse(&results[i]))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"total": len(out), "results": out})
}

// SetInitialStock godoc
// @Summary      Fijar existencia inicial de un producto en una sucursal
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetInitialStockRequest  true  "product_id, branch_id, target_quantity"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/initial [post]
func (h *StockHandler) SetInitialStock(c *fiber.Ctx) error {
	var in dto.SetInitialStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.query.SetInitialStock(c.Context(), in.ProductID, in.BranchID, in.TargetQuantity, GetUserID(c))
	if err != nil {
		return stockErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(adjustmentResponse(result))
}

// DeactivateStock godoc
// @Summary      Dar de baja la existencia de un producto en una sucursal
// @Description  Baja lógica: la fila y su historial de movimientos se conservan.
// @Tags         stock
// @Security     Bearer
// @Param        branch_id   path  string  true  "ID de la sucursal"
// @Param        product_id  path  string  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{branch_id}/products/{product_id}/stock [delete]
func (h *StockHandler) DeactivateStock(c *fiber.Ctx) error {
	if err := h.adjust.Deactivate(c.Context(), c.Params("product_id"), c.Params("branch_id")); err != nil {
		return stockErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Devuelve los movimientos más recientes (máximo 100) según filtros opcionales.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        branch_id   query  string  false  "Filtrar por sucursal"
// @Param        reason      query  string  false  "Subcadena del motivo (sin distinguir mayúsculas)"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}   dto.StockMovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: err.Error()})
	}
	movements, err := h.query.ListMovements(c.Context(), filter)
	if err != nil {
		return stockErrorResponse(c, err)
	}
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// BranchSummary godoc
// @Summary      Resumen de inventario de una sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.BranchStockSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/stock-summary [get]
func (h *StockHandler) BranchSummary(c *fiber.Ctx) error {
	summary, err := h.query.BranchStockSummary(c.Context(), c.Params("id"))
	if err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(summary)
}

// LowStockAlerts godoc
// @Summary      Alertas de bajo stock de una sucursal
// @Description  Ordenadas por urgencia ascendente (cantidad/umbral; 0 = agotado primero).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      200  {array}   dto.LowStockAlertDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/low-stock-alerts [get]
func (h *StockHandler) LowStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.query.LowStockAlerts(c.Context(), c.Params("id"))
	if err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		ProductID:      c.Query("product_id"),
		BranchID:       c.Query("branch_id"),
		ReasonContains: c.Query("reason"),
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, errors.New("from: fecha inválida, usar RFC3339")
		}
		filter.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, errors.New("to: fecha inválida, usar RFC3339")
		}
		filter.To = &t
	}
	return filter, nil
}

func adjustmentResponse(r *inventory.AdjustmentResult) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		Balance: dto.StockBalanceDTO{
			ProductID:       r.Balance.ProductID,
			BranchID:        r.Balance.BranchID,
			Quantity:        r.Balance.Quantity,
			MinThreshold:    r.Balance.MinThreshold,
			MaxThreshold:    r.Balance.MaxThreshold,
			LastRestockedAt: r.Balance.LastRestockedAt,
		},
		Movement: movementDTO(r.Movement),
	}
}

func movementDTO(m *entity.StockMovement) dto.StockMovementDTO {
	return dto.StockMovementDTO{
		ID:                m.ID,
		ProductID:         m.ProductID,
		BranchID:          m.BranchID,
		Delta:             m.Delta,
		PreviousQuantity:  m.PreviousQuantity,
		ResultingQuantity: m.ResultingQuantity,
		Reason:            m.Reason,
		Notes:             m.Notes,
		ExternalReference: m.ExternalReference,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
	}
}

// stockErrorResponse traduce los errores de dominio a códigos HTTP. El kind
// estable viaja en Code; el mensaje queda para presentación del cliente.
func stockErrorResponse(c *fiber.Ctx, err error) error {
	var negative *domain.NegativeStockError
	var aborted *domain.BatchAbortedError

	switch {
	// BatchAborted va primero: envuelve la causa del ítem y los errors.Is
	// posteriores harían match a través de Unwrap.
	case errors.As(err, &aborted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":       "BATCH_ABORTED",
			"message":    aborted.Error(),
			"item_index": aborted.Index,
			"product_id": aborted.ProductID,
			"branch_id":  aborted.BranchID,
		})
	case errors.As(err, &negative):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "NEGATIVE_STOCK",
			"message":   negative.Error(),
			"requested": negative.Requested,
			"available": negative.Available,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o sucursal no encontrado"})
	case errors.Is(err, domain.ErrTrackingDisabled):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TRACKING_DISABLED", Message: "el producto no maneja control de inventario"})
	case errors.Is(err, domain.ErrStorageConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STORAGE_CONFLICT", Message: "conflicto concurrente, reintentar"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
