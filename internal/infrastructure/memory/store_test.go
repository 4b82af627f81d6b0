package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
	"github.com/tu-usuario/poolstock-api/internal/infrastructure/memory"
)

// Si fn falla, todo lo mutado dentro de Run se revierte: mismas garantías que
// la transacción SQL.
func TestStoreRun_RevierteEnError(t *testing.T) {
	store := memory.NewStore()
	loc := entity.LocationRef{Type: entity.LocationWarehouse, ID: 1}
	require.NoError(t, store.StockEntryRepository().Upsert(&entity.StockEntry{
		ItemID: 1, LocationType: loc.Type, LocationID: loc.ID, Quantity: 10,
	}))

	boom := errors.New("boom")
	err := store.Run(context.Background(), func(
		stockRepo repository.StockEntryRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		entry, err := stockRepo.GetForUpdate(1, loc)
		require.NoError(t, err)
		entry.Quantity = 99
		require.NoError(t, stockRepo.Upsert(entry))
		require.NoError(t, movRepo.Create(&entity.StockMovement{ItemID: 1, LocationType: loc.Type, LocationID: loc.ID}))
		require.NoError(t, adjRepo.Create(&entity.Adjustment{ItemID: 1, QuantityChange: 5}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entry, err := store.StockEntryRepository().Get(1, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(10), entry.Quantity, "el stock volvió al valor previo")

	movs, err := store.StockMovementRepository().ListByItem(1, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "la auditoría no conserva filas de la transacción fallida")

	adjs, err := store.AdjustmentRepository().List(repository.AdjustmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, adjs)
}

func TestStoreRun_ConfirmaEnExito(t *testing.T) {
	store := memory.NewStore()
	loc := entity.LocationRef{Type: entity.LocationVehicle, ID: 2}

	err := store.Run(context.Background(), func(
		stockRepo repository.StockEntryRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		return stockRepo.Upsert(&entity.StockEntry{
			ItemID: 1, LocationType: loc.Type, LocationID: loc.ID, Quantity: 7,
		})
	})
	require.NoError(t, err)

	entry, err := store.StockEntryRepository().Get(1, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(7), entry.Quantity)
}

// RunTransfer revierte también órdenes y líneas creadas dentro de la transacción.
func TestStoreRunTransfer_RevierteOrdenes(t *testing.T) {
	store := memory.NewStore()
	boom := errors.New("boom")

	var orderID int64
	err := store.RunTransfer(context.Background(), func(
		stockRepo repository.StockEntryRepository,
		movRepo repository.StockMovementRepository,
		transferRepo repository.TransferOrderRepository,
	) error {
		order := &entity.TransferOrder{
			Type:        entity.WarehouseToVehicle,
			Status:      entity.TransferPending,
			RequestedBy: 7,
			Lines:       []entity.TransferLineItem{{ItemID: 1, RequestedQuantity: 5}},
		}
		if err := transferRepo.Create(order); err != nil {
			return err
		}
		orderID = order.ID
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NotZero(t, orderID)

	got, err := store.TransferOrderRepository().GetByID(orderID)
	require.NoError(t, err)
	assert.Nil(t, got, "la orden no sobrevive al rollback")
}

// Las entradas devueltas son copias: mutarlas sin Upsert no toca el store.
func TestStore_GetDevuelveCopia(t *testing.T) {
	store := memory.NewStore()
	loc := entity.LocationRef{Type: entity.LocationWarehouse, ID: 1}
	require.NoError(t, store.StockEntryRepository().Upsert(&entity.StockEntry{
		ItemID: 1, LocationType: loc.Type, LocationID: loc.ID, Quantity: 10,
	}))

	entry, err := store.StockEntryRepository().Get(1, loc)
	require.NoError(t, err)
	entry.Quantity = 999

	again, err := store.StockEntryRepository().Get(1, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Quantity)
}

// Límite no positivo pagina con el tamaño por defecto (50), igual que el
// backend postgres y la capa HTTP.
func TestStore_ListLimitePorDefecto(t *testing.T) {
	store := memory.NewStore()
	loc := entity.LocationRef{Type: entity.LocationWarehouse, ID: 1}
	for i := 0; i < 55; i++ {
		require.NoError(t, store.StockMovementRepository().Create(&entity.StockMovement{
			ItemID: 1, LocationType: loc.Type, LocationID: loc.ID, Type: "adjustment", Quantity: 1,
		}))
	}

	movs, err := store.StockMovementRepository().ListByItem(1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 50)

	movs, err = store.StockMovementRepository().ListByItem(1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 10)

	movs, err = store.StockMovementRepository().ListByItem(1, 0, 50)
	require.NoError(t, err)
	assert.Len(t, movs, 5)
}
