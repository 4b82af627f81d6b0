package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/application/usecase"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/poolstock-api/internal/infrastructure/pdf"
	apphttp "github.com/tu-usuario/poolstock-api/internal/interfaces/http"
	"github.com/tu-usuario/poolstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la aplicación completa sobre el store en memoria, con el
// mismo cableado que el arranque real.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	registry := inventory.NewLocationRegistry(
		store.WarehouseRepository(), store.VehicleRepository(), store.ClientSiteRepository())
	ledger := inventory.NewStockLedger(log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:      usecase.NewItemUseCase(store.ItemRepository()),
		WarehouseUC: usecase.NewWarehouseUseCase(store.WarehouseRepository()),
		VehicleUC:   usecase.NewVehicleUseCase(store.VehicleRepository()),
		AdjustmentUC: inventory.NewAdjustmentUseCase(
			store, store.ItemRepository(), store.AdjustmentRepository(), registry, ledger),
		TransferUC: inventory.NewTransferUseCase(
			store, store.ItemRepository(), store.TransferOrderRepository(), registry, ledger, log),
		StockQueries: inventory.NewStockQueryUseCase(store.StockEntryRepository(), store.StockMovementRepository()),
		LowStockUC:   inventory.NewLowStockUseCase(store.ItemRepository(), store.StockEntryRepository()),
		Reports:      infrapdf.NewMarotoReportGenerator(),
		AppName:      "poolstock-test",
	})
	return app, store
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode deserializa el cuerpo de la respuesta en out.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// seed crea artículo, bodega y vehículo vía API y devuelve sus IDs.
func seed(t *testing.T, app *fiber.App) (itemID, warehouseID, vehicleID int64) {
	t.Helper()
	var item struct {
		ID int64 `json:"id"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/items", fiber.Map{
		"name": "Cloro granulado", "category": "quimicos", "cost_per_unit": "12.50",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &item)

	var warehouse struct {
		ID int64 `json:"id"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/warehouses", fiber.Map{"name": "Bodega central"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &warehouse)

	var vehicle struct {
		ID int64 `json:"id"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/vehicles", fiber.Map{"name": "Camioneta 1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &vehicle)

	return item.ID, warehouse.ID, vehicle.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AjusteYConsultaDeStock(t *testing.T) {
	app, _ := buildTestApp(t)
	itemID, warehouseID, _ := seed(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/adjustments", fiber.Map{
		"item_id":         itemID,
		"location_type":   "warehouse",
		"location_id":     warehouseID,
		"quantity_change": 25,
		"reason":          "count_correction",
		"performed_by":    7,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var entries []struct {
		Quantity int64 `json:"quantity"`
	}
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/stock/locations/warehouse/%d", warehouseID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(25), entries[0].Quantity)
}

func TestAPI_AjusteInvalidoDevuelve400(t *testing.T) {
	app, _ := buildTestApp(t)
	itemID, warehouseID, _ := seed(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/adjustments", fiber.Map{
		"item_id":         itemID,
		"location_type":   "warehouse",
		"location_id":     warehouseID,
		"quantity_change": 0,
		"reason":          "count_correction",
		"performed_by":    7,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestAPI_CicloDeTraslado(t *testing.T) {
	app, store := buildTestApp(t)
	itemID, warehouseID, vehicleID := seed(t, app)

	require.NoError(t, store.StockEntryRepository().Upsert(&entity.StockEntry{
		ItemID:       itemID,
		LocationType: entity.LocationWarehouse,
		LocationID:   warehouseID,
		Quantity:     45,
	}))

	var order struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Lines  []struct {
			ID int64 `json:"id"`
		} `json:"lines"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/transfers", fiber.Map{
		"type":           "warehouse_to_vehicle",
		"source_id":      warehouseID,
		"destination_id": vehicleID,
		"requested_by":   7,
		"lines":          []fiber.Map{{"item_id": itemID, "requested_quantity": 5}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &order)
	assert.Equal(t, "pending", order.Status)
	require.Len(t, order.Lines, 1)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/transfers/%d/dispatch", order.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var completed struct {
		Status   string   `json:"status"`
		Warnings []string `json:"warnings"`
	}
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/transfers/%d/complete", order.ID), fiber.Map{
		"completed_by": 9,
		"lines":        []fiber.Map{{"line_id": order.Lines[0].ID, "actual_quantity": 5}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &completed)
	assert.Equal(t, "completed", completed.Status)
	assert.Empty(t, completed.Warnings)

	// Completar de nuevo choca con la máquina de estados
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/transfers/%d/complete", order.ID), fiber.Map{
		"completed_by": 9,
		"lines":        []fiber.Map{{"line_id": order.Lines[0].ID, "actual_quantity": 5}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict struct {
		Code string `json:"code"`
	}
	decode(t, resp, &conflict)
	assert.Equal(t, "INVALID_TRANSITION", conflict.Code)

	var entries []struct {
		Quantity int64 `json:"quantity"`
	}
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/stock/locations/vehicle/%d", vehicleID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].Quantity)
}

func TestAPI_RecursoInexistenteDevuelve404(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/items/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/transfers/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_UbicacionDesconocidaDevuelve400(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/stock/locations/closet/1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
