package inventory

import (
	"context"

	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// si fn falla, ninguna mutación queda aplicada (Rollback, nunca commit parcial).
type TxRunner interface {
	// Run transacción para ajustes: libro + auditoría + registro del ajuste.
	Run(ctx context.Context, fn func(
		stockRepo repository.StockEntryRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.AdjustmentRepository,
	) error) error

	// RunTransfer transacción para órdenes de traslado: libro + auditoría + orden.
	RunTransfer(ctx context.Context, fn func(
		stockRepo repository.StockEntryRepository,
		movRepo repository.StockMovementRepository,
		transferRepo repository.TransferOrderRepository,
	) error) error
}
