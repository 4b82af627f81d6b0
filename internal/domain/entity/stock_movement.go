package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementAdjustment  = "adjustment"   // ajuste directo con motivo
	MovementTransferOut = "transfer_out" // salida por traslado
	MovementTransferIn  = "transfer_in"  // entrada por traslado
)

// StockMovement representa una mutación aplicada al libro (auditoría inmutable).
// TransactionID agrupa todas las filas escritas por una misma operación:
// un ajuste o la completación de un traslado.
type StockMovement struct {
	ID            int64
	TransactionID string // uuid
	ItemID        int64
	LocationType  LocationType
	LocationID    int64
	Type          string
	Quantity      int64  // delta firmado realmente aplicado (tras recorte a cero)
	Resulting     int64  // cantidad resultante en la entrada
	Reference     string // "adjustment:<id>" u "transfer:<id>"
	CreatedAt     time.Time
	CreatedBy     int64
}
