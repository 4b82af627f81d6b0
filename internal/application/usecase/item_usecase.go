package usecase

import (
	"time"

	"github.com/tu-usuario/poolstock-api/internal/application/dto"
	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos del catálogo.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un artículo.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if (in.ReorderPoint != nil && *in.ReorderPoint < 0) ||
		(in.ReorderQuantity != nil && *in.ReorderQuantity < 0) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		Name:            in.Name,
		Category:        in.Category,
		UnitMeasure:     in.UnitMeasure,
		CostPerUnit:     in.CostPerUnit,
		ReorderPoint:    in.ReorderPoint,
		ReorderQuantity: in.ReorderQuantity,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza los atributos mutables de un artículo.
func (uc *ItemUseCase) Update(id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.UnitMeasure != nil {
		item.UnitMeasure = *in.UnitMeasure
	}
	if in.CostPerUnit != nil {
		item.CostPerUnit = *in.CostPerUnit
	}
	if in.ReorderPoint != nil {
		item.ReorderPoint = in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		item.ReorderQuantity = in.ReorderQuantity
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista artículos activos, opcionalmente por categoría, con paginación.
func (uc *ItemUseCase) List(category string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	if item == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		UnitMeasure:     item.UnitMeasure,
		CostPerUnit:     item.CostPerUnit,
		ReorderPoint:    item.ReorderPoint,
		ReorderQuantity: item.ReorderQuantity,
		Active:          item.Active,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
