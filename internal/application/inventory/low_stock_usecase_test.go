package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
)

// La frontera del punto de reorden: agregado igual al punto es bajo; una unidad
// por encima ya no.
func TestLowStockScan_FronteraDelPuntoDeReorden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.item.ReorderPoint = ptr(int64(20))
	require.NoError(t, f.store.ItemRepository().Update(&f.item))
	f.setStock(t, f.item.ID, f.warehouseRef(), 20)

	low, err := f.lowStock.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1, "agregado == punto de reorden cuenta como bajo")
	assert.Equal(t, int64(20), low[0].Aggregate)

	f.setStock(t, f.item.ID, f.warehouseRef(), 21)
	low, err = f.lowStock.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, low, "una unidad por encima ya no es bajo")
}

// El agregado suma todas las ubicaciones: 15 en bodega + 10 en vehículo supera
// un punto de reorden de 20 aunque cada ubicación por separado no llegue.
func TestLowStockScan_AgregadoSobreUbicaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.item.ReorderPoint = ptr(int64(20))
	require.NoError(t, f.store.ItemRepository().Update(&f.item))
	f.setStock(t, f.item.ID, f.warehouseRef(), 15)
	f.setStock(t, f.item.ID, f.vehicleRef(), 10)

	low, err := f.lowStock.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)
}

// Sin punto de reorden configurado el artículo nunca se reporta, ni con cero.
func TestLowStockScan_SinPuntoDeReorden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	low, err := f.lowStock.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)
}

// Cantidad sugerida: ReorderQuantity si está configurada; si no, el déficit
// hasta el punto de reorden. El costo estimado multiplica por el costo unitario.
func TestLowStockScan_CantidadSugeridaYCosto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.item.ReorderPoint = ptr(int64(20))
	f.item.ReorderQuantity = ptr(int64(50))
	require.NoError(t, f.store.ItemRepository().Update(&f.item))
	f.setStock(t, f.item.ID, f.warehouseRef(), 4)

	low, err := f.lowStock.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, int64(50), low[0].SuggestedQty)
	assert.True(t, low[0].EstimatedCost.Equal(decimal.RequireFromString("625.00")),
		"50 * 12.50 = 625, obtuvo %s", low[0].EstimatedCost)

	// Sin ReorderQuantity: sugiere el déficit
	f.item.ReorderQuantity = nil
	require.NoError(t, f.store.ItemRepository().Update(&f.item))
	low, err = f.lowStock.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, int64(16), low[0].SuggestedQty)
}

// Las entradas bajo mínimo son por ubicación, independientes del punto de
// reorden del artículo.
func TestLowEntries_MinimoPorUbicacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.StockEntryRepository().Upsert(&entity.StockEntry{
		ItemID:       f.item.ID,
		LocationType: entity.LocationVehicle,
		LocationID:   f.vehicle.ID,
		Quantity:     2,
		MinLevel:     ptr(int64(5)),
	}))
	f.setStock(t, f.item.ID, f.warehouseRef(), 100)

	low, err := f.lowStock.LowEntries(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, entity.LocationVehicle, low[0].LocationType)
	assert.Equal(t, int64(2), low[0].Quantity)
}
