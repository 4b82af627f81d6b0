package inventory

import (
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// LocationRegistry resuelve un par (tipo, id) a una ubicación concreta y
// confirma su existencia antes de cualquier mutación. Falla cerrado: ubicación
// inexistente o inactiva devuelve ErrNotFound, para que el stock nunca quede
// asociado a un lugar que no existe.
type LocationRegistry struct {
	warehouseRepo repository.WarehouseRepository
	vehicleRepo   repository.VehicleRepository
	siteRepo      repository.ClientSiteRepository
}

// NewLocationRegistry construye el registro de ubicaciones.
func NewLocationRegistry(
	warehouseRepo repository.WarehouseRepository,
	vehicleRepo repository.VehicleRepository,
	siteRepo repository.ClientSiteRepository,
) *LocationRegistry {
	return &LocationRegistry{
		warehouseRepo: warehouseRepo,
		vehicleRepo:   vehicleRepo,
		siteRepo:      siteRepo,
	}
}

// Resolve busca la ubicación por (tipo, id). Lookup puro, sin efectos.
func (r *LocationRegistry) Resolve(t entity.LocationType, id int64) (*entity.Location, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidInput
	}
	switch t {
	case entity.LocationWarehouse:
		w, err := r.warehouseRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if w == nil || !w.Active {
			return nil, domain.ErrNotFound
		}
		return &entity.Location{Type: t, ID: w.ID, Name: w.Name, Active: w.Active}, nil
	case entity.LocationVehicle:
		v, err := r.vehicleRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if v == nil || !v.Active {
			return nil, domain.ErrNotFound
		}
		return &entity.Location{Type: t, ID: v.ID, Name: v.Name, Active: v.Active}, nil
	default: // client_site
		s, err := r.siteRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if s == nil || !s.Active {
			return nil, domain.ErrNotFound
		}
		return &entity.Location{Type: t, ID: s.ID, Name: s.Name, Active: s.Active}, nil
	}
}
