package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/excel"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/pdf"
)

// ReportsHandler endpoints administrativos de exportación: PDF de inventario
// por sucursal y XLSX del historial de movimientos. Solo lectura.
type ReportsHandler struct {
	query       *inventory.StockQueryUseCase
	balanceRepo repository.StockBalanceRepository
	branchRepo  repository.BranchRepository
	pdfGen      *pdf.StockReportGenerator
	excelExp    *excel.MovementExporter
}

// NewReportsHandler construye el handler.
func NewReportsHandler(
	query *inventory.StockQueryUseCase,
	balanceRepo repository.StockBalanceRepository,
	branchRepo repository.BranchRepository,
	pdfGen *pdf.StockReportGenerator,
	excelExp *excel.MovementExporter,
) *ReportsHandler {
	return &ReportsHandler{
		query:       query,
		balanceRepo: balanceRepo,
		branchRepo:  branchRepo,
		pdfGen:      pdfGen,
		excelExp:    excelExp,
	}
}

// BranchStockPDF godoc
// @Summary      Reporte PDF de inventario de una sucursal
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/branches/{id}/stock.pdf [get]
func (h *ReportsHandler) BranchStockPDF(c *fiber.Ctx) error {
	branchID := c.Params("id")
	branch, err := h.branchRepo.GetByID(c.Context(), branchID)
	if err != nil {
		return stockErrorResponse(c, err)
	}
	if branch == nil {
		return stockErrorResponse(c, domain.ErrNotFound)
	}

	summary, err := h.query.BranchStockSummary(c.Context(), branchID)
	if err != nil {
		return stockErrorResponse(c, err)
	}
	rows, err := h.balanceRepo.ListBranchStock(c.Context(), branchID, entity.PriceTierDineIn)
	if err != nil {
		return stockErrorResponse(c, err)
	}

	bytes, err := h.pdfGen.GenerateBranchStockPDF(branch, summary, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_GENERATION", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario-`+branchID+`.pdf"`)
	return c.Send(bytes)
}

// MovementsExcel godoc
// @Summary      Exportar historial de movimientos a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        branch_id   query  string  false  "Filtrar por sucursal"
// @Param        reason      query  string  false  "Subcadena del motivo"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.xlsx [get]
func (h *ReportsHandler) MovementsExcel(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: err.Error()})
	}
	movements, err := h.query.ListMovements(c.Context(), filter)
	if err != nil {
		return stockErrorResponse(c, err)
	}
	bytes, err := h.excelExp.Export(movements)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXCEL_GENERATION", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.xlsx"`)
	return c.Send(bytes)
}
