package dto

import "time"

// StockEntryResponse cantidad de un artículo en una ubicación.
type StockEntryResponse struct {
	ItemID       int64     `json:"item_id"`
	LocationType string    `json:"location_type"`
	LocationID   int64     `json:"location_id"`
	Quantity     int64     `json:"quantity"`
	MinLevel     *int64    `json:"min_level,omitempty"`
	MaxLevel     *int64    `json:"max_level,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockMovementResponse fila de auditoría del libro.
type StockMovementResponse struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ItemID        int64     `json:"item_id"`
	LocationType  string    `json:"location_type"`
	LocationID    int64     `json:"location_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Resulting     int64     `json:"resulting_quantity"`
	Reference     string    `json:"reference,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     int64     `json:"created_by"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	ItemID         int64  `json:"item_id"`
	LocationType   string `json:"location_type"`
	LocationID     int64  `json:"location_id"`
	QuantityChange int64  `json:"quantity_change"`
	Reason         string `json:"reason"`
	PerformedBy    int64  `json:"performed_by"`
	MaintenanceID  *int64 `json:"maintenance_id,omitempty"`
}

// AdjustmentResponse representación de un ajuste en respuestas. Warnings
// acompaña recortes en cero (no fatales).
type AdjustmentResponse struct {
	ID             int64     `json:"id"`
	ItemID         int64     `json:"item_id"`
	LocationType   string    `json:"location_type"`
	LocationID     int64     `json:"location_id"`
	QuantityChange int64     `json:"quantity_change"`
	Reason         string    `json:"reason"`
	PerformedBy    int64     `json:"performed_by"`
	MaintenanceID  *int64    `json:"maintenance_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Warnings       []string  `json:"warnings,omitempty"`
}

// TransferLineRequest línea solicitada al crear un traslado.
type TransferLineRequest struct {
	ItemID            int64 `json:"item_id"`
	RequestedQuantity int64 `json:"requested_quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	Type          string                `json:"type"`
	SourceID      int64                 `json:"source_id"`
	DestinationID int64                 `json:"destination_id"`
	RequestedBy   int64                 `json:"requested_by"`
	ScheduledDate *time.Time            `json:"scheduled_date,omitempty"`
	Lines         []TransferLineRequest `json:"lines"`
}

// ApproveTransferRequest body para POST /api/transfers/:id/approve.
type ApproveTransferRequest struct {
	ApprovedBy int64 `json:"approved_by"`
	Lines      []struct {
		LineID           int64 `json:"line_id"`
		ApprovedQuantity int64 `json:"approved_quantity"`
	} `json:"lines"`
}

// CompleteTransferRequest body para POST /api/transfers/:id/complete.
// Las líneas omitidas quedan sin cantidad real y no tocan stock.
type CompleteTransferRequest struct {
	CompletedBy int64 `json:"completed_by"`
	Lines       []struct {
		LineID         int64 `json:"line_id"`
		ActualQuantity int64 `json:"actual_quantity"`
	} `json:"lines"`
}

// TransferLineResponse línea de una orden en respuestas.
type TransferLineResponse struct {
	ID                int64  `json:"id"`
	ItemID            int64  `json:"item_id"`
	RequestedQuantity int64  `json:"requested_quantity"`
	ApprovedQuantity  *int64 `json:"approved_quantity,omitempty"`
	ActualQuantity    *int64 `json:"actual_quantity,omitempty"`
}

// TransferResponse representación de una orden de traslado en respuestas.
type TransferResponse struct {
	ID            int64                  `json:"id"`
	Type          string                 `json:"type"`
	SourceID      int64                  `json:"source_id"`
	DestinationID int64                  `json:"destination_id"`
	Status        string                 `json:"status"`
	RequestedBy   int64                  `json:"requested_by"`
	ApprovedBy    *int64                 `json:"approved_by,omitempty"`
	CompletedBy   *int64                 `json:"completed_by,omitempty"`
	ScheduledDate *time.Time             `json:"scheduled_date,omitempty"`
	RequestedAt   time.Time              `json:"requested_at"`
	ApprovedAt    *time.Time             `json:"approved_at,omitempty"`
	CompletedAt   *time.Time             `json:"completed_at,omitempty"`
	Lines         []TransferLineResponse `json:"lines"`
	Warnings      []string               `json:"warnings,omitempty"`
}
