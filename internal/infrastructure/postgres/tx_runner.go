package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Si fn
// devuelve error la transacción se revierte completa: el libro nunca queda
// con un commit parcial.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de libro, auditoría y ajustes.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockEntryRepository,
	movRepo repository.StockMovementRepository,
	adjRepo repository.AdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockEntryRepository(tx), NewStockMovementRepository(tx), NewAdjustmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer inicia una transacción con repos de libro, auditoría y órdenes
// de traslado (para el ciclo de vida completo de la orden).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	stockRepo repository.StockEntryRepository,
	movRepo repository.StockMovementRepository,
	transferRepo repository.TransferOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockEntryRepository(tx), NewStockMovementRepository(tx), NewTransferOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
