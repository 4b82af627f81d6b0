package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *usecase.ItemUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	VehicleUC    *usecase.VehicleUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	TransferUC   *inventory.TransferUseCase
	StockQueries *inventory.StockQueryUseCase
	LowStockUC   *inventory.LowStockUseCase
	Reports      ReportGenerator
	AppName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de artículos
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)

	// Ubicaciones
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	vehicles := api.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)

	// Libro de stock: consultas, auditoría y stock bajo
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockQueries, deps.LowStockUC, deps.Reports, deps.AppName)
	stock.Get("/low", stockHandler.LowEntries)
	stock.Get("/reorder", stockHandler.Reorder)
	stock.Get("/reorder/report", stockHandler.ReorderReport)
	stock.Get("/items/:id", stockHandler.ListByItem)
	stock.Get("/items/:id/movements", stockHandler.MovementsByItem)
	stock.Get("/locations/:type/:id", stockHandler.ListByLocation)
	stock.Get("/locations/:type/:id/movements", stockHandler.MovementsByLocation)

	// Ajustes manuales
	adjustments := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)

	// Órdenes de traslado
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/approve", transferHandler.Approve)
	transfers.Post("/:id/dispatch", transferHandler.Dispatch)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Post("/:id/complete", transferHandler.Complete)
}
