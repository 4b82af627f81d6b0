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
	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/application/usecase"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
	"github.com/tu-usuario/poolstock-api/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/poolstock-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/poolstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/poolstock-api/internal/interfaces/http"
	"github.com/tu-usuario/poolstock-api/pkg/config"
	"github.com/tu-usuario/poolstock-api/pkg/logger"
)

// backend agrupa los repositorios y el ejecutor transaccional del medio de
// persistencia elegido. Se resuelve una sola vez al arrancar.
type backend struct {
	txRunner       inventory.TxRunner
	itemRepo       repository.ItemRepository
	warehouseRepo  repository.WarehouseRepository
	vehicleRepo    repository.VehicleRepository
	clientSiteRepo repository.ClientSiteRepository
	stockRepo      repository.StockEntryRepository
	movementRepo   repository.StockMovementRepository
	transferRepo   repository.TransferOrderRepository
	adjustmentRepo repository.AdjustmentRepository
	close          func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var be backend
	if cfg.App.Storage == "memory" {
		store := memory.NewStore()
		be = backend{
			txRunner:       store,
			itemRepo:       store.ItemRepository(),
			warehouseRepo:  store.WarehouseRepository(),
			vehicleRepo:    store.VehicleRepository(),
			clientSiteRepo: store.ClientSiteRepository(),
			stockRepo:      store.StockEntryRepository(),
			movementRepo:   store.StockMovementRepository(),
			transferRepo:   store.TransferOrderRepository(),
			adjustmentRepo: store.AdjustmentRepository(),
			close:          func() {},
		}
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		be = backend{
			txRunner:       postgres.NewTxRunner(pool),
			itemRepo:       postgres.NewItemRepository(pool),
			warehouseRepo:  postgres.NewWarehouseRepository(pool),
			vehicleRepo:    postgres.NewVehicleRepository(pool),
			clientSiteRepo: postgres.NewClientSiteRepository(pool),
			stockRepo:      postgres.NewStockEntryRepository(pool),
			movementRepo:   postgres.NewStockMovementRepository(pool),
			transferRepo:   postgres.NewTransferOrderRepository(pool),
			adjustmentRepo: postgres.NewAdjustmentRepository(pool),
			close:          pool.Close,
		}
	}
	defer be.close()

	registry := inventory.NewLocationRegistry(be.warehouseRepo, be.vehicleRepo, be.clientSiteRepo)
	ledger := inventory.NewStockLedger(log)

	itemUC := usecase.NewItemUseCase(be.itemRepo)
	warehouseUC := usecase.NewWarehouseUseCase(be.warehouseRepo)
	vehicleUC := usecase.NewVehicleUseCase(be.vehicleRepo)
	adjustmentUC := inventory.NewAdjustmentUseCase(be.txRunner, be.itemRepo, be.adjustmentRepo, registry, ledger)
	transferUC := inventory.NewTransferUseCase(be.txRunner, be.itemRepo, be.transferRepo, registry, ledger, log)
	stockQueries := inventory.NewStockQueryUseCase(be.stockRepo, be.movementRepo)
	lowStockUC := inventory.NewLowStockUseCase(be.itemRepo, be.stockRepo)
	reportGen := infrapdf.NewMarotoReportGenerator()

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
		Title:    "PoolStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		WarehouseUC:  warehouseUC,
		VehicleUC:    vehicleUC,
		AdjustmentUC: adjustmentUC,
		TransferUC:   transferUC,
		StockQueries: stockQueries,
		LowStockUC:   lowStockUC,
		Reports:      reportGen,
		AppName:      cfg.App.Name,
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
