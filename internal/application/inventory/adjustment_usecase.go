package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// AdjustmentInput entrada para crear un ajuste de stock.
type AdjustmentInput struct {
	ItemID         int64
	LocationType   entity.LocationType
	LocationID     int64
	QuantityChange int64
	Reason         entity.AdjustmentReason
	PerformedBy    int64
	MaintenanceID  *int64
}

// AdjustmentUseCase crea ajustes de stock de forma transaccional: la mutación
// del libro y la persistencia del registro son una sola unidad atómica.
type AdjustmentUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	adjRepo  repository.AdjustmentRepository
	registry *LocationRegistry
	ledger   *StockLedger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	adjRepo repository.AdjustmentRepository,
	registry *LocationRegistry,
	ledger *StockLedger,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		adjRepo:  adjRepo,
		registry: registry,
		ledger:   ledger,
	}
}

// Create valida, resuelve la ubicación, aplica el delta al libro y persiste el
// ajuste, todo dentro de una transacción. Devuelve clamped=true si un delta
// negativo fue recortado en cero.
func (uc *AdjustmentUseCase) Create(ctx context.Context, input AdjustmentInput) (*entity.Adjustment, bool, error) {
	// Validación estructural antes de cualquier mutación
	if input.QuantityChange == 0 || !input.Reason.Valid() || input.PerformedBy <= 0 {
		return nil, false, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, domain.ErrNotFound
	}
	loc, err := uc.registry.Resolve(input.LocationType, input.LocationID)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	adj := &entity.Adjustment{
		ItemID:         input.ItemID,
		LocationType:   loc.Type,
		LocationID:     loc.ID,
		QuantityChange: input.QuantityChange,
		Reason:         input.Reason,
		PerformedBy:    input.PerformedBy,
		MaintenanceID:  input.MaintenanceID,
		CreatedAt:      now,
	}

	var clamped bool
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockEntryRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		if err := adjRepo.Create(adj); err != nil {
			return err
		}
		meta := MovementMeta{
			TransactionID: uuid.New().String(),
			Type:          entity.MovementAdjustment,
			Reference:     fmt.Sprintf("adjustment:%d", adj.ID),
			PerformedBy:   input.PerformedBy,
			Now:           now,
		}
		c, err := uc.ledger.ApplySignedDelta(stockRepo, movRepo, meta, input.ItemID, loc.Ref(), input.QuantityChange)
		if err != nil {
			return err
		}
		clamped = c
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return adj, clamped, nil
}

// GetByID obtiene un ajuste por ID.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id int64) (*entity.Adjustment, error) {
	adj, err := uc.adjRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return adj, nil
}

// List lista ajustes por artículo, ubicación, usuario, motivo o rango de fechas.
// Lectura pura, sin interacción con el libro.
func (uc *AdjustmentUseCase) List(ctx context.Context, filter repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	if filter.Reason != "" && !filter.Reason.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.LocationType != "" && !filter.LocationType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.adjRepo.List(filter)
}
