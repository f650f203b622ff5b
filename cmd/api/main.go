package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/cache"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/excel"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Restobar-api/internal/interfaces/http"
	"github.com/jhoicas/Restobar-api/pkg/config"
	"github.com/jhoicas/Restobar-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Invalidación de vistas: opcional, la app funciona sin Redis.
	var invalidator inventory.ViewInvalidator
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible; invalidación de vistas desactivada")
	} else if rdb != nil {
		invalidator = cache.NewRedisViewInvalidator(rdb, log)
	}

	balanceRepo := postgres.NewStockBalanceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adjustUC := inventory.NewAdjustStockUseCase(txRunner, invalidator)
	bulkUC := inventory.NewBulkAdjustUseCase(txRunner, invalidator)
	queryUC := inventory.NewStockQueryUseCase(balanceRepo, movementRepo, adjustUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restobar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Adjust:      adjustUC,
		Bulk:        bulkUC,
		Query:       queryUC,
		BalanceRepo: balanceRepo,
		BranchRepo:  branchRepo,
		PriceRepo:   priceRepo,
		PDFGen:      pdf.NewStockReportGenerator(),
		ExcelExp:    excel.NewMovementExporter(),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
