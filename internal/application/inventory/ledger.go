package inventory

import (
	"time"

	"github.com/tu-usuario/poolstock-api/internal/domain"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
	"github.com/tu-usuario/poolstock-api/pkg/logger"
)

// MovementMeta metadatos de auditoría comunes a las mutaciones de una misma
// operación (un ajuste o la completación de un traslado).
type MovementMeta struct {
	TransactionID string // uuid que agrupa las filas de auditoría
	Type          string // entity.MovementAdjustment / MovementTransferOut / MovementTransferIn
	Reference     string // "adjustment:<id>" u "transfer:<id>"
	PerformedBy   int64
	Now           time.Time
}

// StockLedger libro autoritativo de cantidades por (artículo, ubicación).
// Todas las mutaciones de stock pasan por aquí; los repositorios llegan atados
// a la transacción del caller (TxRunner), de modo que cada mutación bloquea la
// fila con SELECT FOR UPDATE y queda serializada por clave.
type StockLedger struct {
	log *logger.Logger
}

// NewStockLedger construye el libro.
func NewStockLedger(log *logger.Logger) *StockLedger {
	return &StockLedger{log: log}
}

// Quantity devuelve la cantidad actual; 0 si no existe entrada.
func (l *StockLedger) Quantity(stockRepo repository.StockEntryRepository, itemID int64, loc entity.LocationRef) (int64, error) {
	entry, err := stockRepo.Get(itemID, loc)
	if err != nil {
		return 0, err
	}
	return entry.Quantity, nil
}

// Increment suma amount (>0) a la entrada, creándola si no existe, y registra
// la mutación en la auditoría.
func (l *StockLedger) Increment(
	stockRepo repository.StockEntryRepository,
	movRepo repository.StockMovementRepository,
	meta MovementMeta,
	itemID int64, loc entity.LocationRef, amount int64,
) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	entry, err := stockRepo.GetForUpdate(itemID, loc)
	if err != nil {
		return err
	}
	entry.Quantity += amount
	entry.UpdatedAt = meta.Now
	if err := stockRepo.Upsert(entry); err != nil {
		return err
	}
	return movRepo.Create(&entity.StockMovement{
		TransactionID: meta.TransactionID,
		ItemID:        itemID,
		LocationType:  loc.Type,
		LocationID:    loc.ID,
		Type:          meta.Type,
		Quantity:      amount,
		Resulting:     entry.Quantity,
		Reference:     meta.Reference,
		CreatedAt:     meta.Now,
		CreatedBy:     meta.PerformedBy,
	})
}

// Decrement resta amount (>0) de la entrada, recortando en cero. El recorte no
// es un error: la cantidad en origen puede diferir de lo esperado; se registra
// un warning y la auditoría refleja el delta realmente aplicado.
// Devuelve clamped=true si hubo recorte.
func (l *StockLedger) Decrement(
	stockRepo repository.StockEntryRepository,
	movRepo repository.StockMovementRepository,
	meta MovementMeta,
	itemID int64, loc entity.LocationRef, amount int64,
) (bool, error) {
	if amount <= 0 {
		return false, domain.ErrInvalidInput
	}
	entry, err := stockRepo.GetForUpdate(itemID, loc)
	if err != nil {
		return false, err
	}
	applied := amount
	clamped := false
	if entry.Quantity < amount {
		applied = entry.Quantity
		clamped = true
		l.log.Warn().
			Int64("item_id", itemID).
			Str("location_type", string(loc.Type)).
			Int64("location_id", loc.ID).
			Int64("requested", amount).
			Int64("available", entry.Quantity).
			Str("reference", meta.Reference).
			Msg("decremento recortado en cero")
	}
	entry.Quantity -= applied
	entry.UpdatedAt = meta.Now
	if err := stockRepo.Upsert(entry); err != nil {
		return clamped, err
	}
	return clamped, movRepo.Create(&entity.StockMovement{
		TransactionID: meta.TransactionID,
		ItemID:        itemID,
		LocationType:  loc.Type,
		LocationID:    loc.ID,
		Type:          meta.Type,
		Quantity:      -applied,
		Resulting:     entry.Quantity,
		Reference:     meta.Reference,
		CreatedAt:     meta.Now,
		CreatedBy:     meta.PerformedBy,
	})
}

// ApplySignedDelta aplica un delta firmado: positivo incrementa, negativo
// decrementa (con recorte en cero), cero no hace nada.
func (l *StockLedger) ApplySignedDelta(
	stockRepo repository.StockEntryRepository,
	movRepo repository.StockMovementRepository,
	meta MovementMeta,
	itemID int64, loc entity.LocationRef, delta int64,
) (bool, error) {
	switch {
	case delta > 0:
		return false, l.Increment(stockRepo, movRepo, meta, itemID, loc, delta)
	case delta < 0:
		return l.Decrement(stockRepo, movRepo, meta, itemID, loc, -delta)
	}
	return false, nil
}

// AggregateAcrossLocations suma la cantidad de un artículo sobre todas las
// ubicaciones. Usado para la evaluación de stock bajo.
func (l *StockLedger) AggregateAcrossLocations(stockRepo repository.StockEntryRepository, itemID int64) (int64, error) {
	return stockRepo.AggregateByItem(itemID)
}
