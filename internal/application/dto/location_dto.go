package dto

import "time"

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses/:id (campos opcionales).
type UpdateWarehouseRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// WarehouseResponse representación de una bodega en respuestas.
type WarehouseResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse listado paginado de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Name        string `json:"name"`
	PlateNumber string `json:"plate_number,omitempty"`
}

// UpdateVehicleRequest body para PUT /api/vehicles/:id (campos opcionales).
type UpdateVehicleRequest struct {
	Name        *string `json:"name,omitempty"`
	PlateNumber *string `json:"plate_number,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// VehicleResponse representación de un vehículo en respuestas.
type VehicleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PlateNumber string    `json:"plate_number,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VehicleListResponse listado paginado de vehículos.
type VehicleListResponse struct {
	Items []VehicleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
