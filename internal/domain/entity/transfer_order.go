package entity

import "time"

// TransferStatus estado del ciclo de vida de una orden de traslado.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in_transit"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// Terminal indica si el estado no admite más transiciones.
func (s TransferStatus) Terminal() bool {
	return s == TransferCompleted || s == TransferCancelled
}

// CanTransitionTo valida la transición de estado de forma centralizada.
// pending -> in_transit | cancelled; in_transit -> completed | cancelled;
// completed y cancelled son terminales.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	switch s {
	case TransferPending:
		return next == TransferInTransit || next == TransferCancelled
	case TransferInTransit:
		return next == TransferCompleted || next == TransferCancelled
	}
	return false
}

// TransferType uno de los seis pares origen->destino permitidos.
type TransferType string

const (
	WarehouseToWarehouse TransferType = "warehouse_to_warehouse"
	WarehouseToVehicle   TransferType = "warehouse_to_vehicle"
	VehicleToWarehouse   TransferType = "vehicle_to_warehouse"
	VehicleToVehicle     TransferType = "vehicle_to_vehicle"
	WarehouseToClient    TransferType = "warehouse_to_client"
	VehicleToClient      TransferType = "vehicle_to_client"
)

// Valid indica si el tipo de traslado es uno de los seis permitidos.
func (t TransferType) Valid() bool {
	switch t {
	case WarehouseToWarehouse, WarehouseToVehicle, VehicleToWarehouse,
		VehicleToVehicle, WarehouseToClient, VehicleToClient:
		return true
	}
	return false
}

// SourceType tipo de ubicación exigido para el origen.
func (t TransferType) SourceType() LocationType {
	switch t {
	case WarehouseToWarehouse, WarehouseToVehicle, WarehouseToClient:
		return LocationWarehouse
	case VehicleToWarehouse, VehicleToVehicle, VehicleToClient:
		return LocationVehicle
	}
	return ""
}

// DestinationType tipo de ubicación exigido para el destino.
func (t TransferType) DestinationType() LocationType {
	switch t {
	case WarehouseToWarehouse, VehicleToWarehouse:
		return LocationWarehouse
	case WarehouseToVehicle, VehicleToVehicle:
		return LocationVehicle
	case WarehouseToClient, VehicleToClient:
		return LocationClientSite
	}
	return ""
}

// TransferOrder representa una orden de traslado multi-artículo entre ubicaciones.
type TransferOrder struct {
	ID            int64
	Type          TransferType
	SourceID      int64
	DestinationID int64
	Status        TransferStatus
	RequestedBy   int64
	ApprovedBy    *int64
	CompletedBy   *int64
	ScheduledDate *time.Time
	RequestedAt   time.Time
	ApprovedAt    *time.Time
	CompletedAt   *time.Time
	Lines         []TransferLineItem
}

// Source devuelve la identidad (tipo, id) del origen.
func (o TransferOrder) Source() LocationRef {
	return LocationRef{Type: o.Type.SourceType(), ID: o.SourceID}
}

// Destination devuelve la identidad (tipo, id) del destino.
func (o TransferOrder) Destination() LocationRef {
	return LocationRef{Type: o.Type.DestinationType(), ID: o.DestinationID}
}

// TransferLineItem línea de una orden de traslado. Pertenece a exactamente una
// orden. ActualQuantity solo se fija al completar; nil = la línea no toca stock.
type TransferLineItem struct {
	ID                int64
	TransferID        int64
	ItemID            int64
	RequestedQuantity int64
	ApprovedQuantity  *int64
	ActualQuantity    *int64
}
