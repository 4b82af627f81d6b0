package entity

import "time"

// LocationType tipo de ubicación física capaz de contener stock.
type LocationType string

const (
	LocationWarehouse  LocationType = "warehouse"
	LocationVehicle    LocationType = "vehicle"
	LocationClientSite LocationType = "client_site"
)

// Valid indica si el tipo de ubicación es conocido.
func (t LocationType) Valid() bool {
	switch t {
	case LocationWarehouse, LocationVehicle, LocationClientSite:
		return true
	}
	return false
}

// LedgerTracked indica si el libro mantiene cantidades para este tipo como
// destino de traslados. Un traslado hacia sitio de cliente se considera consumo:
// solo se descuenta el origen.
func (t LocationType) LedgerTracked() bool {
	return t == LocationWarehouse || t == LocationVehicle
}

// LocationRef identifica una ubicación por (tipo, id). Dos ubicaciones de tipo
// distinto pueden compartir id numérico y jamás deben confundirse.
type LocationRef struct {
	Type LocationType
	ID   int64
}

// Location ubicación resuelta por el registro (bodega, vehículo o sitio de cliente).
type Location struct {
	Type   LocationType
	ID     int64
	Name   string
	Active bool
}

// Ref devuelve la identidad (tipo, id) de la ubicación.
func (l Location) Ref() LocationRef {
	return LocationRef{Type: l.Type, ID: l.ID}
}

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        int64
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vehicle representa un vehículo de servicio que transporta stock en ruta.
type Vehicle struct {
	ID          int64
	Name        string
	PlateNumber string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClientSite representa el sitio de un cliente (piscina). Un traslado hacia el
// sitio consume el stock en origen; un ajuste directo sí puede registrar
// cantidades dejadas en sitio.
type ClientSite struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt time.Time
}
