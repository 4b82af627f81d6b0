package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/poolstock-api/internal/application/dto"
	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// AdjustmentHandler maneja las peticiones HTTP de ajustes de stock.
type AdjustmentHandler struct {
	uc *inventory.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ajuste manual de stock
// @Description  Aplica el delta al libro y guarda el registro de auditoría en
//	una sola transacción. Un delta negativo mayor que el stock disponible se
//	recorta en cero y se reporta como warning.
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "item_id, ubicación, quantity_change, reason y performed_by"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, clamped, err := h.uc.Create(c.Context(), inventory.AdjustmentInput{
		ItemID:         in.ItemID,
		LocationType:   entity.LocationType(in.LocationType),
		LocationID:     in.LocationID,
		QuantityChange: in.QuantityChange,
		Reason:         entity.AdjustmentReason(in.Reason),
		PerformedBy:    in.PerformedBy,
		MaintenanceID:  in.MaintenanceID,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	out := toAdjustmentResponse(adj)
	if clamped {
		out.Warnings = []string{"stock insuficiente: el decremento fue recortado en cero"}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar ajuste por ID
// @Tags         adjustments
// @Produce      json
// @Param        id  path  int  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	adj, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// List godoc
// @Summary      Listar ajustes
// @Tags         adjustments
// @Produce      json
// @Param        item_id        query  int     false  "Filtrar por artículo"
// @Param        location_type  query  string  false  "Filtrar por tipo de ubicación"
// @Param        location_id    query  int     false  "Filtrar por ID de ubicación"
// @Param        performed_by   query  int     false  "Filtrar por usuario"
// @Param        reason         query  string  false  "Filtrar por motivo"
// @Param        from           query  string  false  "Creados desde (RFC3339)"
// @Param        to             query  string  false  "Creados hasta (RFC3339)"
// @Param        limit          query  int     false  "Tamaño de página (máx 500)"
// @Param        offset         query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.AdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	filter := repository.AdjustmentFilter{
		ItemID:       int64(c.QueryInt("item_id")),
		LocationType: entity.LocationType(c.Query("location_type")),
		LocationID:   int64(c.QueryInt("location_id")),
		PerformedBy:  int64(c.QueryInt("performed_by")),
		Reason:       entity.AdjustmentReason(c.Query("reason")),
		Limit:        limit,
		Offset:       offset,
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida"})
		}
		filter.To = &t
	}
	adjs, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjs))
	for _, a := range adjs {
		out = append(out, *toAdjustmentResponse(a))
	}
	return c.JSON(out)
}

func toAdjustmentResponse(a *entity.Adjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:             a.ID,
		ItemID:         a.ItemID,
		LocationType:   string(a.LocationType),
		LocationID:     a.LocationID,
		QuantityChange: a.QuantityChange,
		Reason:         string(a.Reason),
		PerformedBy:    a.PerformedBy,
		MaintenanceID:  a.MaintenanceID,
		CreatedAt:      a.CreatedAt,
	}
}
