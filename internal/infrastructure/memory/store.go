// Package memory implementa los mismos puertos de persistencia que postgres
// sobre mapas en memoria, protegidos por un mutex del store. Se usa en tests y
// en despliegues efímeros; se selecciona una sola vez en la composición, nunca
// como lógica duplicada.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tu-usuario/poolstock-api/internal/application/inventory"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type stockKey struct {
	itemID       int64
	locationType entity.LocationType
	locationID   int64
}

// Store contenedor de estado en memoria. Los IDs los genera un contador
// atómico propio del store (jamás una variable mutable a nivel de módulo).
type Store struct {
	mu sync.Mutex

	nextID int64

	items       map[int64]entity.Item
	warehouses  map[int64]entity.Warehouse
	vehicles    map[int64]entity.Vehicle
	clientSites map[int64]entity.ClientSite
	stock       map[stockKey]entity.StockEntry
	movements   []entity.StockMovement
	transfers   map[int64]entity.TransferOrder
	lines       map[int64]entity.TransferLineItem
	adjustments map[int64]entity.Adjustment
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		items:       make(map[int64]entity.Item),
		warehouses:  make(map[int64]entity.Warehouse),
		vehicles:    make(map[int64]entity.Vehicle),
		clientSites: make(map[int64]entity.ClientSite),
		stock:       make(map[stockKey]entity.StockEntry),
		transfers:   make(map[int64]entity.TransferOrder),
		lines:       make(map[int64]entity.TransferLineItem),
		adjustments: make(map[int64]entity.Adjustment),
	}
}

// genID asigna el siguiente ID. Llamar con el mutex tomado.
func (s *Store) genID() int64 {
	s.nextID++
	return s.nextID
}

// Run ejecuta fn bajo el mutex del store: toda la operación es atómica
// respecto a cualquier otra mutación, igual que la transacción SQL.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockEntryRepository,
	movRepo repository.StockMovementRepository,
	adjRepo repository.AdjustmentRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.clone()
	if err := fn(&stockRepo{s: s, tx: true}, &movementRepo{s: s, tx: true}, &adjustmentRepo{s: s, tx: true}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// RunTransfer igual que Run, con el repositorio de órdenes de traslado.
func (s *Store) RunTransfer(ctx context.Context, fn func(
	stockRepo repository.StockEntryRepository,
	movRepo repository.StockMovementRepository,
	transferRepo repository.TransferOrderRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.clone()
	if err := fn(&stockRepo{s: s, tx: true}, &movementRepo{s: s, tx: true}, &transferRepo{s: s, tx: true}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	nextID      int64
	stock       map[stockKey]entity.StockEntry
	movements   []entity.StockMovement
	transfers   map[int64]entity.TransferOrder
	lines       map[int64]entity.TransferLineItem
	adjustments map[int64]entity.Adjustment
}

// clone copia el estado mutable por las transacciones, para poder revertir si
// fn falla (Rollback, nunca commit parcial). Llamar con el mutex tomado.
func (s *Store) clone() storeSnapshot {
	snap := storeSnapshot{
		nextID:      s.nextID,
		stock:       make(map[stockKey]entity.StockEntry, len(s.stock)),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		transfers:   make(map[int64]entity.TransferOrder, len(s.transfers)),
		lines:       make(map[int64]entity.TransferLineItem, len(s.lines)),
		adjustments: make(map[int64]entity.Adjustment, len(s.adjustments)),
	}
	for k, v := range s.stock {
		snap.stock[k] = v
	}
	for k, v := range s.transfers {
		v.Lines = append([]entity.TransferLineItem(nil), v.Lines...)
		snap.transfers[k] = v
	}
	for k, v := range s.lines {
		snap.lines[k] = v
	}
	for k, v := range s.adjustments {
		snap.adjustments[k] = v
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.nextID = snap.nextID
	s.stock = snap.stock
	s.movements = snap.movements
	s.transfers = snap.transfers
	s.lines = snap.lines
	s.adjustments = snap.adjustments
}

// sortedIDs claves de un mapa en orden ascendente, para listados estables.
func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// defaultPageSize tamaño de página cuando el llamador no indica límite.
// Debe coincidir con el valor por defecto de la capa HTTP y del backend postgres.
const defaultPageSize = 50

// page aplica limit/offset sobre un slice ya ordenado.
func page[T any](list []T, limit, offset int) []T {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list
}
