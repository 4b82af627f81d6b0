package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo y asigna el ID generado por la BD.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (name, category, unit_measure, cost_per_unit, reorder_point, reorder_quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.Name, item.Category, item.UnitMeasure, item.CostPerUnit,
		item.ReorderPoint, item.ReorderQuantity, item.Active, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; nil si no existe.
func (r *ItemRepo) GetByID(id int64) (*entity.Item, error) {
	query := `
		SELECT id, name, category, unit_measure, cost_per_unit, reorder_point, reorder_quantity, active, created_at, updated_at
		FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Name, &it.Category, &it.UnitMeasure, &it.CostPerUnit,
		&it.ReorderPoint, &it.ReorderQuantity, &it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Update actualiza los atributos mutables de un artículo.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, unit_measure = $4, cost_per_unit = $5,
		    reorder_point = $6, reorder_quantity = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.UnitMeasure, item.CostPerUnit,
		item.ReorderPoint, item.ReorderQuantity, item.Active, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// List lista artículos activos; category vacío = todas. limit <= 0 = sin límite.
func (r *ItemRepo) List(category string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, name, category, unit_measure, cost_per_unit, reorder_point, reorder_quantity, active, created_at, updated_at
		FROM items WHERE active = true`
	args := []any{}
	pos := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	query += " ORDER BY name"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Category, &it.UnitMeasure, &it.CostPerUnit,
			&it.ReorderPoint, &it.ReorderQuantity, &it.Active, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
