package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/poolstock-api/internal/application/dto"
	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// TransferHandler maneja las peticiones HTTP de órdenes de traslado.
type TransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de traslado
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "type, source_id, destination_id, requested_by y lines"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := inventory.CreateTransferInput{
		Type:          entity.TransferType(in.Type),
		SourceID:      in.SourceID,
		DestinationID: in.DestinationID,
		RequestedBy:   in.RequestedBy,
		ScheduledDate: in.ScheduledDate,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.TransferLineInput{
			ItemID:            l.ItemID,
			RequestedQuantity: l.RequestedQuantity,
		})
	}
	order, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(order, nil))
}

// GetByID godoc
// @Summary      Consultar orden de traslado
// @Tags         transfers
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	order, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferResponse(order, nil))
}

// List godoc
// @Summary      Listar órdenes de traslado
// @Tags         transfers
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        type    query  string  false  "Filtrar por tipo de traslado"
// @Param        from    query  string  false  "Solicitadas desde (RFC3339)"
// @Param        to      query  string  false  "Solicitadas hasta (RFC3339)"
// @Param        limit   query  int     false  "Tamaño de página (máx 500)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	filter := repository.TransferFilter{
		Status: entity.TransferStatus(c.Query("status")),
		Type:   entity.TransferType(c.Query("type")),
		Limit:  limit,
		Offset: offset,
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
	orders, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toTransferResponse(o, nil))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar una orden pendiente fijando cantidades por línea
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID de la orden"
// @Param        body  body  dto.ApproveTransferRequest  true  "approved_by y cantidades aprobadas por línea"
// @Success      200  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.ApproveTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	approvals := make([]inventory.LineApproval, 0, len(in.Lines))
	for _, l := range in.Lines {
		approvals = append(approvals, inventory.LineApproval{
			LineID:           l.LineID,
			ApprovedQuantity: l.ApprovedQuantity,
		})
	}
	order, err := h.uc.Approve(c.Context(), id, approvals, in.ApprovedBy)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferResponse(order, nil))
}

// Dispatch godoc
// @Summary      Marcar la orden como en tránsito
// @Tags         transfers
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/dispatch [post]
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	order, err := h.uc.MarkInTransit(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferResponse(order, nil))
}

// Cancel godoc
// @Summary      Cancelar una orden pendiente o en tránsito
// @Tags         transfers
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	order, err := h.uc.Cancel(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferResponse(order, nil))
}

// Complete godoc
// @Summary      Completar la orden aplicando cantidades reales al libro
// @Description  Ejecuta todas las líneas en una sola transacción. Los recortes
//	por stock insuficiente en origen no fallan la operación: se devuelven
//	como warnings.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID de la orden"
// @Param        body  body  dto.CompleteTransferRequest  true  "completed_by y cantidades reales por línea"
// @Success      200  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.CompleteTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actuals := make([]inventory.LineActual, 0, len(in.Lines))
	for _, l := range in.Lines {
		actuals = append(actuals, inventory.LineActual{
			LineID:         l.LineID,
			ActualQuantity: l.ActualQuantity,
		})
	}
	order, warnings, err := h.uc.Complete(c.Context(), id, actuals, in.CompletedBy)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferResponse(order, warnings))
}

func toTransferResponse(o *entity.TransferOrder, warnings []string) *dto.TransferResponse {
	lines := make([]dto.TransferLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.TransferLineResponse{
			ID:                l.ID,
			ItemID:            l.ItemID,
			RequestedQuantity: l.RequestedQuantity,
			ApprovedQuantity:  l.ApprovedQuantity,
			ActualQuantity:    l.ActualQuantity,
		})
	}
	return &dto.TransferResponse{
		ID:            o.ID,
		Type:          string(o.Type),
		SourceID:      o.SourceID,
		DestinationID: o.DestinationID,
		Status:        string(o.Status),
		RequestedBy:   o.RequestedBy,
		ApprovedBy:    o.ApprovedBy,
		CompletedBy:   o.CompletedBy,
		ScheduledDate: o.ScheduledDate,
		RequestedAt:   o.RequestedAt,
		ApprovedAt:    o.ApprovedAt,
		CompletedAt:   o.CompletedAt,
		Lines:         lines,
		Warnings:      warnings,
	}
}
