package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ repository.TransferOrderRepository = (*TransferOrderRepo)(nil)

// TransferOrderRepo implementación del puerto TransferOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type TransferOrderRepo struct {
	q Querier
}

// NewTransferOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferOrderRepository(q Querier) *TransferOrderRepo {
	return &TransferOrderRepo{q: q}
}

const transferColumns = `id, type, source_id, destination_id, status, requested_by, approved_by, completed_by, scheduled_date, requested_at, approved_at, completed_at`

// Create persiste la orden con sus líneas y asigna los IDs generados.
func (r *TransferOrderRepo) Create(order *entity.TransferOrder) error {
	query := `
		INSERT INTO transfer_orders (type, source_id, destination_id, status, requested_by, approved_by, completed_by, scheduled_date, requested_at, approved_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		order.Type, order.SourceID, order.DestinationID, order.Status,
		order.RequestedBy, order.ApprovedBy, order.CompletedBy,
		order.ScheduledDate, order.RequestedAt, order.ApprovedAt, order.CompletedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert transfer order: %w", err)
	}
	lineQuery := `
		INSERT INTO transfer_line_items (transfer_id, item_id, requested_quantity, approved_quantity, actual_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	for i := range order.Lines {
		line := &order.Lines[i]
		line.TransferID = order.ID
		err := r.q.QueryRow(context.Background(), lineQuery,
			line.TransferID, line.ItemID, line.RequestedQuantity, line.ApprovedQuantity, line.ActualQuantity,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID carga la orden con sus líneas; nil si no existe.
func (r *TransferOrderRepo) GetByID(id int64) (*entity.TransferOrder, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_orders WHERE id = $1`
	return r.get(query, id)
}

// GetByIDForUpdate carga la orden bloqueando su fila (SELECT FOR UPDATE), para
// serializar transiciones de estado concurrentes sobre la misma orden.
func (r *TransferOrderRepo) GetByIDForUpdate(id int64) (*entity.TransferOrder, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_orders WHERE id = $1 FOR UPDATE`
	return r.get(query, id)
}

func (r *TransferOrderRepo) get(query string, id int64) (*entity.TransferOrder, error) {
	var o entity.TransferOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Type, &o.SourceID, &o.DestinationID, &o.Status,
		&o.RequestedBy, &o.ApprovedBy, &o.CompletedBy,
		&o.ScheduledDate, &o.RequestedAt, &o.ApprovedAt, &o.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *TransferOrderRepo) loadLines(order *entity.TransferOrder) error {
	query := `
		SELECT id, transfer_id, item_id, requested_quantity, approved_quantity, actual_quantity
		FROM transfer_line_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, order.ID)
	if err != nil {
		return fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	order.Lines = order.Lines[:0]
	for rows.Next() {
		var l entity.TransferLineItem
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ItemID, &l.RequestedQuantity, &l.ApprovedQuantity, &l.ActualQuantity); err != nil {
			return fmt.Errorf("scan transfer line: %w", err)
		}
		order.Lines = append(order.Lines, l)
	}
	return rows.Err()
}

// Update persiste los campos mutables de cabecera.
func (r *TransferOrderRepo) Update(order *entity.TransferOrder) error {
	query := `
		UPDATE transfer_orders
		SET status = $2, approved_by = $3, completed_by = $4, scheduled_date = $5, approved_at = $6, completed_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.ApprovedBy, order.CompletedBy,
		order.ScheduledDate, order.ApprovedAt, order.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer order: %w", err)
	}
	return nil
}

// UpdateLine persiste cantidades aprobadas/reales de una línea.
func (r *TransferOrderRepo) UpdateLine(line *entity.TransferLineItem) error {
	query := `
		UPDATE transfer_line_items
		SET approved_quantity = $2, actual_quantity = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, line.ID, line.ApprovedQuantity, line.ActualQuantity)
	if err != nil {
		return fmt.Errorf("update transfer line: %w", err)
	}
	return nil
}

// List lista órdenes (con líneas) por estado, tipo o rango de fechas de solicitud.
func (r *TransferOrderRepo) List(filter repository.TransferFilter) ([]*entity.TransferOrder, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_orders WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND requested_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND requested_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	limit := normalizeLimit(filter.Limit)
	query += fmt.Sprintf(" ORDER BY requested_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferOrder
	for rows.Next() {
		var o entity.TransferOrder
		if err := rows.Scan(
			&o.ID, &o.Type, &o.SourceID, &o.DestinationID, &o.Status,
			&o.RequestedBy, &o.ApprovedBy, &o.CompletedBy,
			&o.ScheduledDate, &o.RequestedAt, &o.ApprovedAt, &o.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadLines(o); err != nil {
			return nil, err
		}
	}
	return list, nil
}
