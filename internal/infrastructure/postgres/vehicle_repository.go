package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación del puerto VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de persistencia para vehículos.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo y asigna el ID generado.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (name, plate_number, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		vehicle.Name, vehicle.PlateNumber, vehicle.Active, vehicle.CreatedAt, vehicle.UpdatedAt,
	).Scan(&vehicle.ID)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID; nil si no existe.
func (r *VehicleRepo) GetByID(id int64) (*entity.Vehicle, error) {
	query := `
		SELECT id, name, plate_number, active, created_at, updated_at
		FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Name, &v.PlateNumber, &v.Active, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// Update actualiza un vehículo existente.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, plate_number = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.Name, vehicle.PlateNumber, vehicle.Active, vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// ListActive lista vehículos activos con paginación.
func (r *VehicleRepo) ListActive(limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, name, plate_number, active, created_at, updated_at
		FROM vehicles WHERE active = true
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.PlateNumber, &v.Active, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
