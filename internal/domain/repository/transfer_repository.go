package repository

import (
	"time"

	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
)

// TransferFilter filtros de listado de órdenes de traslado.
type TransferFilter struct {
	Status entity.TransferStatus
	Type   entity.TransferType
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// TransferOrderRepository define el puerto de persistencia para órdenes de
// traslado y sus líneas.
type TransferOrderRepository interface {
	// Create persiste la orden con sus líneas y asigna los IDs generados.
	Create(order *entity.TransferOrder) error
	// GetByID carga la orden con sus líneas; nil si no existe.
	GetByID(id int64) (*entity.TransferOrder, error)
	// GetByIDForUpdate carga la orden bloqueando su fila, para serializar
	// transiciones de estado concurrentes.
	GetByIDForUpdate(id int64) (*entity.TransferOrder, error)
	// Update persiste los campos mutables de cabecera (estado, sellos, actores).
	Update(order *entity.TransferOrder) error
	// UpdateLine persiste cantidades aprobadas/reales de una línea.
	UpdateLine(line *entity.TransferLineItem) error
	List(filter TransferFilter) ([]*entity.TransferOrder, error)
}
