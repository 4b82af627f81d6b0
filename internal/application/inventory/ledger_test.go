package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
)

func testMeta(txID string) inventory.MovementMeta {
	return inventory.MovementMeta{
		TransactionID: txID,
		Type:          entity.MovementAdjustment,
		Reference:     "adjustment:1",
		PerformedBy:   7,
		Now:           time.Now(),
	}
}

// El incremento crea la entrada de forma perezosa y deja rastro en la auditoría.
func TestStockLedger_IncrementCreaEntrada(t *testing.T) {
	f := newFixture(t)
	stockRepo := f.store.StockEntryRepository()
	movRepo := f.store.StockMovementRepository()

	require.NoError(t, f.ledger.Increment(stockRepo, movRepo, testMeta("tx-1"), f.item.ID, f.warehouseRef(), 45))
	assert.Equal(t, int64(45), f.quantity(t, f.item.ID, f.warehouseRef()))

	movs, err := movRepo.ListByItem(f.item.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(45), movs[0].Quantity)
	assert.Equal(t, int64(45), movs[0].Resulting)
	assert.Equal(t, "tx-1", movs[0].TransactionID)
}

func TestStockLedger_IncrementRechazaMontoNoPositivo(t *testing.T) {
	f := newFixture(t)
	stockRepo := f.store.StockEntryRepository()
	movRepo := f.store.StockMovementRepository()

	err := f.ledger.Increment(stockRepo, movRepo, testMeta("tx-1"), f.item.ID, f.warehouseRef(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = f.ledger.Increment(stockRepo, movRepo, testMeta("tx-1"), f.item.ID, f.warehouseRef(), -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockLedger_DecrementNormal(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, f.item.ID, f.warehouseRef(), 45)
	stockRepo := f.store.StockEntryRepository()
	movRepo := f.store.StockMovementRepository()

	clamped, err := f.ledger.Decrement(stockRepo, movRepo, testMeta("tx-2"), f.item.ID, f.warehouseRef(), 5)
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.Equal(t, int64(40), f.quantity(t, f.item.ID, f.warehouseRef()))

	movs, err := movRepo.ListByItem(f.item.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(-5), movs[0].Quantity, "la auditoría registra el delta aplicado con signo")
	assert.Equal(t, int64(40), movs[0].Resulting)
}

// Decrementar más de lo disponible recorta en cero: jamás cantidades negativas.
// La auditoría refleja el delta realmente aplicado, no el solicitado.
func TestStockLedger_DecrementRecortaEnCero(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, f.item.ID, f.warehouseRef(), 3)
	stockRepo := f.store.StockEntryRepository()
	movRepo := f.store.StockMovementRepository()

	clamped, err := f.ledger.Decrement(stockRepo, movRepo, testMeta("tx-3"), f.item.ID, f.warehouseRef(), 10)
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, int64(0), f.quantity(t, f.item.ID, f.warehouseRef()))

	movs, err := movRepo.ListByItem(f.item.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(-3), movs[0].Quantity)
	assert.Equal(t, int64(0), movs[0].Resulting)
}

// Decrementar una entrada inexistente equivale a decrementar cero.
func TestStockLedger_DecrementSinEntradaExistente(t *testing.T) {
	f := newFixture(t)
	stockRepo := f.store.StockEntryRepository()
	movRepo := f.store.StockMovementRepository()

	clamped, err := f.ledger.Decrement(stockRepo, movRepo, testMeta("tx-4"), f.item.ID, f.vehicleRef(), 5)
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, int64(0), f.quantity(t, f.item.ID, f.vehicleRef()))
}

func TestStockLedger_ApplySignedDelta(t *testing.T) {
	f := newFixture(t)
	stockRepo := f.store.StockEntryRepository()
	movRepo := f.store.StockMovementRepository()

	clamped, err := f.ledger.ApplySignedDelta(stockRepo, movRepo, testMeta("tx-5"), f.item.ID, f.warehouseRef(), 10)
	require.NoError(t, err)
	assert.False(t, clamped)

	clamped, err = f.ledger.ApplySignedDelta(stockRepo, movRepo, testMeta("tx-5"), f.item.ID, f.warehouseRef(), -4)
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.Equal(t, int64(6), f.quantity(t, f.item.ID, f.warehouseRef()))

	// Delta cero: sin efecto y sin fila de auditoría
	before, err := movRepo.ListByItem(f.item.ID, 0, 0)
	require.NoError(t, err)
	clamped, err = f.ledger.ApplySignedDelta(stockRepo, movRepo, testMeta("tx-5"), f.item.ID, f.warehouseRef(), 0)
	require.NoError(t, err)
	assert.False(t, clamped)
	after, err := movRepo.ListByItem(f.item.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

// La misma identidad de artículo en ubicaciones de tipo distinto con el mismo
// id numérico jamás se confunde.
func TestStockLedger_UbicacionesNoSeConfundenPorID(t *testing.T) {
	f := newFixture(t)
	warehouseLoc := entity.LocationRef{Type: entity.LocationWarehouse, ID: 9}
	vehicleLoc := entity.LocationRef{Type: entity.LocationVehicle, ID: 9}
	f.setStock(t, f.item.ID, warehouseLoc, 20)
	f.setStock(t, f.item.ID, vehicleLoc, 7)

	assert.Equal(t, int64(20), f.quantity(t, f.item.ID, warehouseLoc))
	assert.Equal(t, int64(7), f.quantity(t, f.item.ID, vehicleLoc))

	total, err := f.ledger.AggregateAcrossLocations(f.store.StockEntryRepository(), f.item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(27), total)
}
