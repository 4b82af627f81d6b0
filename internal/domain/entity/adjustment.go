package entity

import "time"

// AdjustmentReason motivo codificado de un ajuste de stock.
type AdjustmentReason string

const (
	ReasonDamaged         AdjustmentReason = "damaged"
	ReasonCountCorrection AdjustmentReason = "count_correction"
	ReasonLoss            AdjustmentReason = "loss"
	ReasonExpiration      AdjustmentReason = "expiration"
	ReasonOther           AdjustmentReason = "other"
)

// Valid indica si el motivo es uno de los codificados.
func (r AdjustmentReason) Valid() bool {
	switch r {
	case ReasonDamaged, ReasonCountCorrection, ReasonLoss, ReasonExpiration, ReasonOther:
		return true
	}
	return false
}

// Adjustment representa un cambio puntual firmado de cantidad (daño, corrección
// de conteo, pérdida). Inmutable una vez creado; corresponde a exactamente una
// mutación del libro aplicada en el momento de creación.
type Adjustment struct {
	ID             int64
	ItemID         int64
	LocationType   LocationType
	LocationID     int64
	QuantityChange int64 // delta firmado solicitado
	Reason         AdjustmentReason
	PerformedBy    int64
	MaintenanceID  *int64 // vínculo opcional a un contexto de mantenimiento/reparación
	CreatedAt      time.Time
}
