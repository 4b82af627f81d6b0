package repository

import (
	"time"

	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
)

// AdjustmentFilter filtros de listado de ajustes. Cero/nil = sin filtro.
type AdjustmentFilter struct {
	ItemID       int64
	LocationType entity.LocationType
	LocationID   int64
	PerformedBy  int64
	Reason       entity.AdjustmentReason
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// AdjustmentRepository define el puerto de persistencia para ajustes de stock.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id int64) (*entity.Adjustment, error)
	List(filter AdjustmentFilter) ([]*entity.Adjustment, error)
}
