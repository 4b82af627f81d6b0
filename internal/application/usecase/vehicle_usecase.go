package usecase

import (
	"time"

	"github.com/tu-usuario/poolstock-api/internal/application/dto"
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// VehicleUseCase casos de uso CRUD para vehículos de servicio.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create crea un vehículo.
func (uc *VehicleUseCase) Create(in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		Name:        in.Name,
		PlateNumber: in.PlateNumber,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// GetByID obtiene un vehículo por ID.
func (uc *VehicleUseCase) GetByID(id int64) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	return toVehicleResponse(vehicle), nil
}

// Update actualiza un vehículo.
func (uc *VehicleUseCase) Update(id int64, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		vehicle.Name = *in.Name
	}
	if in.PlateNumber != nil {
		vehicle.PlateNumber = *in.PlateNumber
	}
	if in.Active != nil {
		vehicle.Active = *in.Active
	}
	vehicle.UpdatedAt = time.Now()
	if err := uc.repo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// ListActive lista vehículos activos con paginación.
func (uc *VehicleUseCase) ListActive(limit, offset int) (*dto.VehicleListResponse, error) {
	list, err := uc.repo.ListActive(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVehicleResponse(v))
	}
	return &dto.VehicleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	if v == nil {
		return nil
	}
	return &dto.VehicleResponse{
		ID:          v.ID,
		Name:        v.Name,
		PlateNumber: v.PlateNumber,
		Active:      v.Active,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
