package repository

import "github.com/tu-usuario/poolstock-api/internal/domain/entity"

// StockEntryRepository define el puerto de persistencia para entradas de stock.
// Clave única (ItemID, LocationType, LocationID). Get devuelve una entrada en
// cero si no existe fila: la creación es perezosa vía Upsert.
type StockEntryRepository interface {
	Get(itemID int64, loc entity.LocationRef) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar las
	// mutaciones concurrentes sobre la misma clave; si no existe, la crea en
	// cero antes de bloquearla.
	GetForUpdate(itemID int64, loc entity.LocationRef) (*entity.StockEntry, error)
	Upsert(entry *entity.StockEntry) error
	ListByLocation(loc entity.LocationRef) ([]*entity.StockEntry, error)
	ListByItem(itemID int64) ([]*entity.StockEntry, error)
	// ListBelowMinimum devuelve las entradas con cantidad por debajo de su mínimo.
	ListBelowMinimum() ([]*entity.StockEntry, error)
	// AggregateByItem suma la cantidad de un artículo sobre todas las ubicaciones.
	AggregateByItem(itemID int64) (int64, error)
	// AggregateAll devuelve la suma por artículo sobre todas las ubicaciones.
	AggregateAll() (map[int64]int64, error)
}

// StockMovementRepository define el puerto de persistencia para la auditoría
// de mutaciones del libro.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItem(itemID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(loc entity.LocationRef, limit, offset int) ([]*entity.StockMovement, error)
}
