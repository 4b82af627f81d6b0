package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

func TestAdjustmentCreate_IncrementoNormal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adj, clamped, err := f.adjustments.Create(ctx, inventory.AdjustmentInput{
		ItemID:         f.item.ID,
		LocationType:   entity.LocationWarehouse,
		LocationID:     f.warehouse.ID,
		QuantityChange: 25,
		Reason:         entity.ReasonCountCorrection,
		PerformedBy:    7,
	})
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.NotZero(t, adj.ID)
	assert.Equal(t, int64(25), f.quantity(t, f.item.ID, f.warehouseRef()))

	// La auditoría referencia el ajuste persistido
	movs, err := f.queries.MovementsByItem(ctx, f.item.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAdjustment, movs[0].Type)
	assert.Contains(t, movs[0].Reference, "adjustment:")
	assert.NotEmpty(t, movs[0].TransactionID)
}

// Un decremento mayor que el stock disponible recorta en cero. No es error: el
// ajuste queda registrado con el delta solicitado y clamped avisa del recorte.
func TestAdjustmentCreate_DecrementoRecortado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setStock(t, f.item.ID, f.warehouseRef(), 3)

	adj, clamped, err := f.adjustments.Create(ctx, inventory.AdjustmentInput{
		ItemID:         f.item.ID,
		LocationType:   entity.LocationWarehouse,
		LocationID:     f.warehouse.ID,
		QuantityChange: -10,
		Reason:         entity.ReasonLoss,
		PerformedBy:    7,
	})
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, int64(-10), adj.QuantityChange, "el registro conserva el delta solicitado")
	assert.Equal(t, int64(0), f.quantity(t, f.item.ID, f.warehouseRef()))
}

// Un ajuste directo sí puede registrar stock dejado en el sitio de un cliente.
func TestAdjustmentCreate_SitioDeCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, clamped, err := f.adjustments.Create(ctx, inventory.AdjustmentInput{
		ItemID:         f.item.ID,
		LocationType:   entity.LocationClientSite,
		LocationID:     f.site.ID,
		QuantityChange: 2,
		Reason:         entity.ReasonOther,
		PerformedBy:    7,
	})
	require.NoError(t, err)
	assert.False(t, clamped)
	siteRef := entity.LocationRef{Type: entity.LocationClientSite, ID: f.site.ID}
	assert.Equal(t, int64(2), f.quantity(t, f.item.ID, siteRef))
}

func TestAdjustmentCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := inventory.AdjustmentInput{
		ItemID:         f.item.ID,
		LocationType:   entity.LocationWarehouse,
		LocationID:     f.warehouse.ID,
		QuantityChange: 5,
		Reason:         entity.ReasonDamaged,
		PerformedBy:    7,
	}

	in := base
	in.QuantityChange = 0
	_, _, err := f.adjustments.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero")

	in = base
	in.Reason = "typo"
	_, _, err = f.adjustments.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo desconocido")

	in = base
	in.PerformedBy = 0
	_, _, err = f.adjustments.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin usuario")

	in = base
	in.ItemID = 999
	_, _, err = f.adjustments.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "artículo inexistente")

	in = base
	in.LocationID = 999
	_, _, err = f.adjustments.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "ubicación inexistente")

	in = base
	in.LocationType = "basement"
	_, _, err = f.adjustments.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de ubicación desconocido")

	// Nada de lo anterior mutó el libro ni dejó ajustes
	assert.Equal(t, int64(0), f.quantity(t, f.item.ID, f.warehouseRef()))
	adjs, err := f.adjustments.List(ctx, repository.AdjustmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, adjs)
}

// Ubicación inactiva: el registro falla cerrado con ErrNotFound.
func TestAdjustmentCreate_UbicacionInactiva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.warehouse.Active = false
	require.NoError(t, f.store.WarehouseRepository().Update(&f.warehouse))

	_, _, err := f.adjustments.Create(ctx, inventory.AdjustmentInput{
		ItemID:         f.item.ID,
		LocationType:   entity.LocationWarehouse,
		LocationID:     f.warehouse.ID,
		QuantityChange: 5,
		Reason:         entity.ReasonDamaged,
		PerformedBy:    7,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustmentList_Filtros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mk := func(change int64, reason entity.AdjustmentReason, by int64) {
		_, _, err := f.adjustments.Create(ctx, inventory.AdjustmentInput{
			ItemID:         f.item.ID,
			LocationType:   entity.LocationWarehouse,
			LocationID:     f.warehouse.ID,
			QuantityChange: change,
			Reason:         reason,
			PerformedBy:    by,
		})
		require.NoError(t, err)
	}
	mk(10, entity.ReasonCountCorrection, 7)
	mk(-2, entity.ReasonDamaged, 7)
	mk(-1, entity.ReasonDamaged, 8)

	all, err := f.adjustments.List(ctx, repository.AdjustmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	damaged, err := f.adjustments.List(ctx, repository.AdjustmentFilter{Reason: entity.ReasonDamaged})
	require.NoError(t, err)
	assert.Len(t, damaged, 2)

	byUser, err := f.adjustments.List(ctx, repository.AdjustmentFilter{PerformedBy: 8})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, int64(-1), byUser[0].QuantityChange)

	_, err = f.adjustments.List(ctx, repository.AdjustmentFilter{Reason: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.adjustments.GetByID(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].ID, got.ID)

	_, err = f.adjustments.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El vínculo opcional a mantenimiento viaja intacto.
func TestAdjustmentCreate_VinculoMantenimiento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adj, _, err := f.adjustments.Create(ctx, inventory.AdjustmentInput{
		ItemID:         f.item.ID,
		LocationType:   entity.LocationVehicle,
		LocationID:     f.vehicle.ID,
		QuantityChange: 4,
		Reason:         entity.ReasonOther,
		PerformedBy:    7,
		MaintenanceID:  ptr(int64(42)),
	})
	require.NoError(t, err)
	require.NotNil(t, adj.MaintenanceID)
	assert.Equal(t, int64(42), *adj.MaintenanceID)
}
