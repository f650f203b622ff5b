package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/excel"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Adjust      *inventory.AdjustStockUseCase
	Bulk        *inventory.BulkAdjustUseCase
	Query       *inventory.StockQueryUseCase
	BalanceRepo repository.StockBalanceRepository
	BranchRepo  repository.BranchRepository
	PriceRepo   repository.PriceRepository
	PDFGen      *pdf.StockReportGenerator
	ExcelExp    *excel.MovementExporter
	JWTSecret   string
}

// Router registra las rutas de la API. Todo el libro de existencias es
// protegido; las mutaciones además exigen rol de administración.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	stockHandler := NewStockHandler(deps.Adjust, deps.Bulk, deps.Query)

	// Mutaciones del libro (solo admin/gerente)
	adminOnly := RequireRole("admin", "gerente")
	stock := api.Group("/stock")
	stock.Post("/adjustments", adminOnly, stockHandler.Adjust)
	stock.Post("/adjustments/bulk", adminOnly, stockHandler.BulkAdjust)
	stock.Post("/initial", adminOnly, stockHandler.SetInitialStock)

	// Lecturas (cualquier rol autenticado)
	stock.Get("/movements", stockHandler.ListMovements)

	branches := api.Group("/branches")
	branches.Get("/:id/stock-summary", stockHandler.BranchSummary)
	branches.Get("/:id/low-stock-alerts", stockHandler.LowStockAlerts)

	branches.Delete("/:branch_id/products/:product_id/stock", adminOnly, stockHandler.DeactivateStock)

	priceHandler := NewPriceHandler(deps.PriceRepo)
	branches.Get("/:branch_id/products/:product_id/price", priceHandler.GetPrice)

	// Reportes administrativos
	reportsHandler := NewReportsHandler(deps.Query, deps.BalanceRepo, deps.BranchRepo, deps.PDFGen, deps.ExcelExp)
	reports := api.Group("/reports")
	reports.Get("/branches/:id/stock.pdf", adminOnly, reportsHandler.BranchStockPDF)
	reports.Get("/movements.xlsx", adminOnly, reportsHandler.MovementsExcel)
}
