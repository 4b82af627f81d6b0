package repository

import "github.com/tu-usuario/poolstock-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para artículos del catálogo (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id int64) (*entity.Item, error)
	Update(item *entity.Item) error
	// List lista artículos activos; category vacío = todas las categorías.
	List(category string, limit, offset int) ([]*entity.Item, error)
}
