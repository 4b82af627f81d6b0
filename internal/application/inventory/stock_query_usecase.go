package inventory

import (
	"context"

	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre entradas de stock y su
// auditoría de movimientos.
type StockQueryUseCase struct {
	stockRepo repository.StockEntryRepository
	movRepo   repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockEntryRepository, movRepo repository.StockMovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// ListByLocation entradas de stock de una ubicación.
func (uc *StockQueryUseCase) ListByLocation(ctx context.Context, loc entity.LocationRef) ([]*entity.StockEntry, error) {
	if !loc.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByLocation(loc)
}

// ListByItem entradas de stock de un artículo sobre todas las ubicaciones.
func (uc *StockQueryUseCase) ListByItem(ctx context.Context, itemID int64) ([]*entity.StockEntry, error) {
	return uc.stockRepo.ListByItem(itemID)
}

// MovementsByItem auditoría de mutaciones de un artículo.
func (uc *StockQueryUseCase) MovementsByItem(ctx context.Context, itemID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByItem(itemID, limit, offset)
}

// MovementsByLocation auditoría de mutaciones de una ubicación.
func (uc *StockQueryUseCase) MovementsByLocation(ctx context.Context, loc entity.LocationRef, limit, offset int) ([]*entity.StockMovement, error) {
	if !loc.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByLocation(loc, limit, offset)
}
