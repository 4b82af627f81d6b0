package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
	"github.com/tu-usuario/poolstock-api/pkg/logger"
)

// TransferLineInput línea solicitada al crear una orden de traslado.
type TransferLineInput struct {
	ItemID            int64
	RequestedQuantity int64
}

// CreateTransferInput entrada para crear una orden de traslado.
type CreateTransferInput struct {
	Type          entity.TransferType
	SourceID      int64
	DestinationID int64
	RequestedBy   int64
	ScheduledDate *time.Time
	Lines         []TransferLineInput
}

// LineApproval cantidad aprobada para una línea.
type LineApproval struct {
	LineID           int64
	ApprovedQuantity int64
}

// LineActual cantidad real movida para una línea, fijada al completar.
type LineActual struct {
	LineID         int64
	ActualQuantity int64
}

// TransferUseCase implementa la máquina de estados de órdenes de traslado:
// pending -> in_transit -> completed, con cancelación desde pending o
// in_transit. Solo la completación toca el libro.
type TransferUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	transferRepo repository.TransferOrderRepository
	registry     *LocationRegistry
	ledger       *StockLedger
	log          *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	transferRepo repository.TransferOrderRepository,
	registry *LocationRegistry,
	ledger *StockLedger,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		transferRepo: transferRepo,
		registry:     registry,
		ledger:       ledger,
		log:          log,
	}
}

// Create valida y persiste la orden en estado pending. Sin efecto en el libro.
// El tipo de traslado debe ser consistente con los tipos de origen y destino.
func (uc *TransferUseCase) Create(ctx context.Context, input CreateTransferInput) (*entity.TransferOrder, error) {
	if !input.Type.Valid() || input.RequestedBy <= 0 || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.RequestedQuantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
	}
	if _, err := uc.registry.Resolve(input.Type.SourceType(), input.SourceID); err != nil {
		return nil, err
	}
	if _, err := uc.registry.Resolve(input.Type.DestinationType(), input.DestinationID); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.TransferOrder{
		Type:          input.Type,
		SourceID:      input.SourceID,
		DestinationID: input.DestinationID,
		Status:        entity.TransferPending,
		RequestedBy:   input.RequestedBy,
		ScheduledDate: input.ScheduledDate,
		RequestedAt:   now,
	}
	for _, line := range input.Lines {
		order.Lines = append(order.Lines, entity.TransferLineItem{
			ItemID:            line.ItemID,
			RequestedQuantity: line.RequestedQuantity,
		})
	}

	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockEntryRepository,
		_ repository.StockMovementRepository,
		transferRepo repository.TransferOrderRepository,
	) error {
		return transferRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Approve fija cantidades aprobadas por línea. Solo sobre órdenes pending y no
// pasa a in_transit automáticamente (eso es MarkInTransit). Sin efecto en el libro.
func (uc *TransferUseCase) Approve(ctx context.Context, transferID int64, approvals []LineApproval, approvedBy int64) (*entity.TransferOrder, error) {
	if approvedBy <= 0 || len(approvals) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, a := range approvals {
		if a.ApprovedQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *entity.TransferOrder
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockEntryRepository,
		_ repository.StockMovementRepository,
		transferRepo repository.TransferOrderRepository,
	) error {
		var err error
		order, err = transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.TransferPending {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		for _, a := range approvals {
			line := findLine(order, a.LineID)
			if line == nil {
				return domain.ErrNotFound
			}
			qty := a.ApprovedQuantity
			line.ApprovedQuantity = &qty
			if err := transferRepo.UpdateLine(line); err != nil {
				return err
			}
		}
		order.ApprovedBy = &approvedBy
		order.ApprovedAt = &now
		return transferRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// MarkInTransit transición pending -> in_transit. Sin efecto en el libro.
func (uc *TransferUseCase) MarkInTransit(ctx context.Context, transferID int64) (*entity.TransferOrder, error) {
	return uc.transition(ctx, transferID, entity.TransferInTransit, nil)
}

// Cancel transición terminal desde pending o in_transit. Sin efecto en el
// libro, incluso si hubo acciones parciales fuera del motor.
func (uc *TransferUseCase) Cancel(ctx context.Context, transferID int64) (*entity.TransferOrder, error) {
	return uc.transition(ctx, transferID, entity.TransferCancelled, nil)
}

// transition aplica una transición de estado validada centralmente, con la fila
// de la orden bloqueada para serializar transiciones concurrentes.
func (uc *TransferUseCase) transition(
	ctx context.Context,
	transferID int64,
	next entity.TransferStatus,
	mutate func(order *entity.TransferOrder),
) (*entity.TransferOrder, error) {
	var order *entity.TransferOrder
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockEntryRepository,
		_ repository.StockMovementRepository,
		transferRepo repository.TransferOrderRepository,
	) error {
		var err error
		order, err = transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		order.Status = next
		if mutate != nil {
			mutate(order)
		}
		return transferRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Complete aplica las cantidades reales al libro y cierra la orden.
// Requiere estado in_transit; la fila bloqueada garantiza que una segunda
// completación concurrente o repetida falle con ErrInvalidTransition sin
// reaplicar deltas. Las líneas sin cantidad real se omiten y no tocan stock.
// Los recortes en cero por línea se devuelven como warnings no fatales.
func (uc *TransferUseCase) Complete(ctx context.Context, transferID int64, actuals []LineActual, completedBy int64) (*entity.TransferOrder, []string, error) {
	if completedBy <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	for _, a := range actuals {
		if a.ActualQuantity < 0 {
			return nil, nil, domain.ErrInvalidInput
		}
	}

	var order *entity.TransferOrder
	var warnings []string
	err := uc.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockEntryRepository,
		movRepo repository.StockMovementRepository,
		transferRepo repository.TransferOrderRepository,
	) error {
		warnings = warnings[:0]
		var err error
		order, err = transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.TransferInTransit {
			return domain.ErrInvalidTransition
		}

		// Fijar cantidades reales antes de tocar el libro; línea desconocida
		// rechaza la operación completa sin mutar nada.
		for _, a := range actuals {
			line := findLine(order, a.LineID)
			if line == nil {
				return domain.ErrNotFound
			}
			qty := a.ActualQuantity
			line.ActualQuantity = &qty
		}

		now := time.Now()
		txID := uuid.New().String()
		source := order.Source()
		destination := order.Destination()
		reference := fmt.Sprintf("transfer:%d", order.ID)

		for i := range order.Lines {
			line := &order.Lines[i]
			if line.ActualQuantity == nil || *line.ActualQuantity == 0 {
				continue // sin cantidad real no hay cambio de stock
			}
			qty := *line.ActualQuantity
			outMeta := MovementMeta{
				TransactionID: txID,
				Type:          entity.MovementTransferOut,
				Reference:     reference,
				PerformedBy:   completedBy,
				Now:           now,
			}
			clamped, err := uc.ledger.Decrement(stockRepo, movRepo, outMeta, line.ItemID, source, qty)
			if err != nil {
				return err
			}
			if clamped {
				warnings = append(warnings, fmt.Sprintf(
					"línea %d: stock en origen insuficiente para el artículo %d, decremento recortado en cero", line.ID, line.ItemID))
			}
			// Destino sitio de cliente: el stock se considera consumido,
			// solo aplica el decremento en origen.
			if destination.Type.LedgerTracked() {
				inMeta := outMeta
				inMeta.Type = entity.MovementTransferIn
				if err := uc.ledger.Increment(stockRepo, movRepo, inMeta, line.ItemID, destination, qty); err != nil {
					return err
				}
			}
		}

		for i := range order.Lines {
			if err := transferRepo.UpdateLine(&order.Lines[i]); err != nil {
				return err
			}
		}

		order.Status = entity.TransferCompleted
		order.CompletedBy = &completedBy
		order.CompletedAt = &now
		return transferRepo.Update(order)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, warnings, nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *TransferUseCase) GetByID(ctx context.Context, id int64) (*entity.TransferOrder, error) {
	order, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes por estado, tipo o rango de fechas de solicitud.
func (uc *TransferUseCase) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.TransferOrder, error) {
	if filter.Status != "" {
		switch filter.Status {
		case entity.TransferPending, entity.TransferInTransit, entity.TransferCompleted, entity.TransferCancelled:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.transferRepo.List(filter)
}

func findLine(order *entity.TransferOrder, lineID int64) *entity.TransferLineItem {
	for i := range order.Lines {
		if order.Lines[i].ID == lineID {
			return &order.Lines[i]
		}
	}
	return nil
}
