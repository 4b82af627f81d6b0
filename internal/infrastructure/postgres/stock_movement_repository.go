package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de la auditoría del libro sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste una fila de auditoría y asigna el ID generado.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transaction_id, item_id, location_type, location_id, type, quantity, resulting_quantity, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.TransactionID, movement.ItemID, movement.LocationType, movement.LocationID,
		movement.Type, movement.Quantity, movement.Resulting, movement.Reference,
		movement.CreatedAt, movement.CreatedBy,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

const stockMovementColumns = `id, transaction_id, item_id, location_type, location_id, type, quantity, resulting_quantity, reference, created_at, created_by`

// ListByItem auditoría de un artículo, más reciente primero.
func (r *StockMovementRepo) ListByItem(itemID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements WHERE item_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.list(query, itemID, normalizeLimit(limit), offset)
}

// ListByLocation auditoría de una ubicación, más reciente primero.
func (r *StockMovementRepo) ListByLocation(loc entity.LocationRef, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements WHERE location_type = $1 AND location_id = $2
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	return r.list(query, loc.Type, loc.ID, normalizeLimit(limit), offset)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ItemID, &m.LocationType, &m.LocationID,
			&m.Type, &m.Quantity, &m.Resulting, &m.Reference, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
