package entity

import "time"

// StockEntry representa la cantidad de un artículo en una ubicación.
// Única por (ItemID, LocationType, LocationID). Se crea de forma perezosa la
// primera vez que llega stock a la ubicación. Invariante: Quantity >= 0 siempre.
type StockEntry struct {
	ItemID       int64
	LocationType LocationType
	LocationID   int64
	Quantity     int64
	MinLevel     *int64 // mínimo por entrada (distinto del punto de reorden del artículo)
	MaxLevel     *int64
	UpdatedAt    time.Time
}

// Ref devuelve la identidad de la ubicación de la entrada.
func (s StockEntry) Ref() LocationRef {
	return LocationRef{Type: s.LocationType, ID: s.LocationID}
}

// BelowMinimum indica si la cantidad está por debajo del mínimo configurado.
// Sin mínimo configurado nunca se reporta baja.
func (s StockEntry) BelowMinimum() bool {
	return s.MinLevel != nil && s.Quantity < *s.MinLevel
}
