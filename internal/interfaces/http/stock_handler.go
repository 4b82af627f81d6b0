package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/poolstock-api/internal/application/dto"
	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
)

// ReportGenerator genera el reporte PDF de reposición.
type ReportGenerator interface {
	GenerateLowStockReport(appName string, items []inventory.LowStockItem) ([]byte, error)
}

// StockHandler maneja las consultas de stock, auditoría y stock bajo.
type StockHandler struct {
	queries  *inventory.StockQueryUseCase
	lowStock *inventory.LowStockUseCase
	reports  ReportGenerator
	appName  string
}

// NewStockHandler construye el handler.
func NewStockHandler(queries *inventory.StockQueryUseCase, lowStock *inventory.LowStockUseCase, reports ReportGenerator, appName string) *StockHandler {
	return &StockHandler{queries: queries, lowStock: lowStock, reports: reports, appName: appName}
}

// parseLocation lee el par :type/:id como referencia de ubicación.
func parseLocation(c *fiber.Ctx) (entity.LocationRef, error) {
	t := entity.LocationType(c.Params("type"))
	if !t.Valid() {
		return entity.LocationRef{}, domain.ErrInvalidInput
	}
	id, err := parseID(c, "id")
	if err != nil {
		return entity.LocationRef{}, err
	}
	return entity.LocationRef{Type: t, ID: id}, nil
}

// ListByLocation godoc
// @Summary      Stock de una ubicación
// @Tags         stock
// @Produce      json
// @Param        type  path  string  true  "Tipo de ubicación (warehouse/vehicle/client_site)"
// @Param        id    path  int     true  "ID de la ubicación"
// @Success      200  {array}   dto.StockEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/locations/{type}/{id} [get]
func (h *StockHandler) ListByLocation(c *fiber.Ctx) error {
	loc, err := parseLocation(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	entries, err := h.queries.ListByLocation(c.Context(), loc)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toStockEntryResponses(entries))
}

// ListByItem godoc
// @Summary      Stock de un artículo en todas las ubicaciones
// @Tags         stock
// @Produce      json
// @Param        id  path  int  true  "ID del artículo"
// @Success      200  {array}   dto.StockEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id} [get]
func (h *StockHandler) ListByItem(c *fiber.Ctx) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	entries, err := h.queries.ListByItem(c.Context(), itemID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toStockEntryResponses(entries))
}

// MovementsByItem godoc
// @Summary      Auditoría de movimientos de un artículo
// @Tags         stock
// @Produce      json
// @Param        id      path   int  true   "ID del artículo"
// @Param        limit   query  int  false  "Tamaño de página (máx 500)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id}/movements [get]
func (h *StockHandler) MovementsByItem(c *fiber.Ctx) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	limit, offset := parsePage(c)
	movs, err := h.queries.MovementsByItem(c.Context(), itemID, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

// MovementsByLocation godoc
// @Summary      Auditoría de movimientos de una ubicación
// @Tags         stock
// @Produce      json
// @Param        type    path   string  true   "Tipo de ubicación"
// @Param        id      path   int     true   "ID de la ubicación"
// @Param        limit   query  int     false  "Tamaño de página (máx 500)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/locations/{type}/{id}/movements [get]
func (h *StockHandler) MovementsByLocation(c *fiber.Ctx) error {
	loc, err := parseLocation(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	limit, offset := parsePage(c)
	movs, err := h.queries.MovementsByLocation(c.Context(), loc, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

// LowEntries godoc
// @Summary      Entradas de stock bajo su mínimo por ubicación
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.StockEntryResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowEntries(c *fiber.Ctx) error {
	entries, err := h.lowStock.LowEntries(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toStockEntryResponses(entries))
}

// Reorder godoc
// @Summary      Artículos en o bajo su punto de reorden (agregado global)
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/stock/reorder [get]
func (h *StockHandler) Reorder(c *fiber.Ctx) error {
	items, err := h.lowStock.Scan(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemResponse{
			Item:          *toItemResponse(it.Item),
			Aggregate:     it.Aggregate,
			SuggestedQty:  it.SuggestedQty,
			EstimatedCost: it.EstimatedCost,
		})
	}
	return c.JSON(out)
}

// ReorderReport godoc
// @Summary      Reporte PDF de reposición
// @Tags         stock
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/reorder/report [get]
func (h *StockHandler) ReorderReport(c *fiber.Ctx) error {
	items, err := h.lowStock.Scan(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	pdf, err := h.reports.GenerateLowStockReport(h.appName, items)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reposicion-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(pdf)
}

func toStockEntryResponses(entries []*entity.StockEntry) []dto.StockEntryResponse {
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StockEntryResponse{
			ItemID:       e.ItemID,
			LocationType: string(e.LocationType),
			LocationID:   e.LocationID,
			Quantity:     e.Quantity,
			MinLevel:     e.MinLevel,
			MaxLevel:     e.MaxLevel,
			UpdatedAt:    e.UpdatedAt,
		})
	}
	return out
}

func toMovementResponses(movs []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ItemID:        m.ItemID,
			LocationType:  string(m.LocationType),
			LocationID:    m.LocationID,
			Type:          string(m.Type),
			Quantity:      m.Quantity,
			Resulting:     m.Resulting,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return out
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		UnitMeasure:     item.UnitMeasure,
		CostPerUnit:     item.CostPerUnit,
		ReorderPoint:    item.ReorderPoint,
		ReorderQuantity: item.ReorderQuantity,
		Active:          item.Active,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
