package repository

import "github.com/tu-usuario/poolstock-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id int64) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListActive(limit, offset int) ([]*entity.Warehouse, error)
}

// VehicleRepository define el puerto de persistencia para vehículos de servicio (DIP).
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id int64) (*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	ListActive(limit, offset int) ([]*entity.Vehicle, error)
}

// ClientSiteRepository define el puerto de consulta de sitios de cliente.
// Los sitios se administran fuera del motor de stock; aquí solo se resuelven.
type ClientSiteRepository interface {
	GetByID(id int64) (*entity.ClientSite, error)
}
