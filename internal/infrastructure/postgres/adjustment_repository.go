package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación del puerto AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, item_id, location_type, location_id, quantity_change, reason, performed_by, maintenance_id, created_at`

// Create persiste un ajuste y asigna el ID generado. Los ajustes son inmutables.
func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	query := `
		INSERT INTO adjustments (item_id, location_type, location_id, quantity_change, reason, performed_by, maintenance_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		adjustment.ItemID, adjustment.LocationType, adjustment.LocationID,
		adjustment.QuantityChange, adjustment.Reason, adjustment.PerformedBy,
		adjustment.MaintenanceID, adjustment.CreatedAt,
	).Scan(&adjustment.ID)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID; nil si no existe.
func (r *AdjustmentRepo) GetByID(id int64) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE id = $1`
	var a entity.Adjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ItemID, &a.LocationType, &a.LocationID, &a.QuantityChange,
		&a.Reason, &a.PerformedBy, &a.MaintenanceID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &a, nil
}

// List lista ajustes con filtros combinables por artículo, ubicación, usuario,
// motivo y rango de fechas.
func (r *AdjustmentRepo) List(filter repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != 0 {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.LocationType != "" {
		query += fmt.Sprintf(" AND location_type = $%d", pos)
		args = append(args, filter.LocationType)
		pos++
	}
	if filter.LocationID != 0 {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.PerformedBy != 0 {
		query += fmt.Sprintf(" AND performed_by = $%d", pos)
		args = append(args, filter.PerformedBy)
		pos++
	}
	if filter.Reason != "" {
		query += fmt.Sprintf(" AND reason = $%d", pos)
		args = append(args, filter.Reason)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	limit := normalizeLimit(filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Adjustment
	for rows.Next() {
		var a entity.Adjustment
		if err := rows.Scan(
			&a.ID, &a.ItemID, &a.LocationType, &a.LocationID, &a.QuantityChange,
			&a.Reason, &a.PerformedBy, &a.MaintenanceID, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
