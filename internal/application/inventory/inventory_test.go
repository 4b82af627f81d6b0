package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/infrastructure/memory"
	"github.com/tu-usuario/poolstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture compartido: store en memoria + casos de uso cableados como en main
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store       *memory.Store
	ledger      *inventory.StockLedger
	registry    *inventory.LocationRegistry
	adjustments *inventory.AdjustmentUseCase
	transfers   *inventory.TransferUseCase
	lowStock    *inventory.LowStockUseCase
	queries     *inventory.StockQueryUseCase

	item      entity.Item
	warehouse entity.Warehouse
	vehicle   entity.Vehicle
	site      entity.ClientSite
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	registry := inventory.NewLocationRegistry(
		store.WarehouseRepository(), store.VehicleRepository(), store.ClientSiteRepository())
	ledger := inventory.NewStockLedger(log)

	f := &fixture{
		store:    store,
		ledger:   ledger,
		registry: registry,
		adjustments: inventory.NewAdjustmentUseCase(
			store, store.ItemRepository(), store.AdjustmentRepository(), registry, ledger),
		transfers: inventory.NewTransferUseCase(
			store, store.ItemRepository(), store.TransferOrderRepository(), registry, ledger, log),
		lowStock: inventory.NewLowStockUseCase(store.ItemRepository(), store.StockEntryRepository()),
		queries:  inventory.NewStockQueryUseCase(store.StockEntryRepository(), store.StockMovementRepository()),
	}

	f.item = entity.Item{
		Name:        "Cloro granulado",
		Category:    "quimicos",
		UnitMeasure: "kg",
		CostPerUnit: decimal.RequireFromString("12.50"),
		Active:      true,
	}
	require.NoError(t, store.ItemRepository().Create(&f.item))

	f.warehouse = entity.Warehouse{Name: "Bodega central", Active: true}
	require.NoError(t, store.WarehouseRepository().Create(&f.warehouse))

	f.vehicle = entity.Vehicle{Name: "Camioneta ruta norte", PlateNumber: "ABC123", Active: true}
	require.NoError(t, store.VehicleRepository().Create(&f.vehicle))

	f.site = store.PutClientSite(entity.ClientSite{Name: "Piscina Club Campestre", Active: true})

	return f
}

func (f *fixture) warehouseRef() entity.LocationRef {
	return entity.LocationRef{Type: entity.LocationWarehouse, ID: f.warehouse.ID}
}

func (f *fixture) vehicleRef() entity.LocationRef {
	return entity.LocationRef{Type: entity.LocationVehicle, ID: f.vehicle.ID}
}

// setStock fija directamente la cantidad de un artículo en una ubicación.
func (f *fixture) setStock(t *testing.T, itemID int64, loc entity.LocationRef, qty int64) {
	t.Helper()
	require.NoError(t, f.store.StockEntryRepository().Upsert(&entity.StockEntry{
		ItemID:       itemID,
		LocationType: loc.Type,
		LocationID:   loc.ID,
		Quantity:     qty,
	}))
}

// quantity lee la cantidad actual; 0 si no hay entrada.
func (f *fixture) quantity(t *testing.T, itemID int64, loc entity.LocationRef) int64 {
	t.Helper()
	entry, err := f.store.StockEntryRepository().Get(itemID, loc)
	require.NoError(t, err)
	return entry.Quantity
}

func ptr[T any](v T) *T { return &v }
