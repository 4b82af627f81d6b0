package memory

import (
	"sort"

	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// Los repos llevan tx=true cuando el mutex del store ya está tomado por
// Run/RunTransfer; fuera de transacción cada método toma el lock por su cuenta.

func (s *Store) lockUnless(tx bool) func() {
	if tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── Items ────────────────────────────────────────────────────────────────────

type itemRepo struct {
	s  *Store
	tx bool
}

// ItemRepository devuelve el adaptador de artículos.
func (s *Store) ItemRepository() repository.ItemRepository { return &itemRepo{s: s} }

func (r *itemRepo) Create(item *entity.Item) error {
	defer r.s.lockUnless(r.tx)()
	item.ID = r.s.genID()
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepo) GetByID(id int64) (*entity.Item, error) {
	defer r.s.lockUnless(r.tx)()
	if it, ok := r.s.items[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (r *itemRepo) Update(item *entity.Item) error {
	defer r.s.lockUnless(r.tx)()
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepo) List(category string, limit, offset int) ([]*entity.Item, error) {
	defer r.s.lockUnless(r.tx)()
	var list []*entity.Item
	for _, id := range sortedIDs(r.s.items) {
		it := r.s.items[id]
		if !it.Active {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		list = append(list, &it)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// ── Warehouses / Vehicles / ClientSites ──────────────────────────────────────

type warehouseRepo struct {
	s  *Store
	tx bool
}

// WarehouseRepository devuelve el adaptador de bodegas.
func (s *Store) WarehouseRepository() repository.WarehouseRepository { return &warehouseRepo{s: s} }

func (r *warehouseRepo) Create(w *entity.Warehouse) error {
	defer r.s.lockUnless(r.tx)()
	w.ID = r.s.genID()
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *warehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	defer r.s.lockUnless(r.tx)()
	if w, ok := r.s.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *warehouseRepo) Update(w *entity.Warehouse) error {
	defer r.s.lockUnless(r.tx)()
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *warehouseRepo) ListActive(limit, offset int) ([]*entity.Warehouse, error) {
	defer r.s.lockUnless(r.tx)()
	var list []*entity.Warehouse
	for _, id := range sortedIDs(r.s.warehouses) {
		w := r.s.warehouses[id]
		if w.Active {
			list = append(list, &w)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

type vehicleRepo struct {
	s  *Store
	tx bool
}

// VehicleRepository devuelve el adaptador de vehículos.
func (s *Store) VehicleRepository() repository.VehicleRepository { return &vehicleRepo{s: s} }

func (r *vehicleRepo) Create(v *entity.Vehicle) error {
	defer r.s.lockUnless(r.tx)()
	v.ID = r.s.genID()
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r *vehicleRepo) GetByID(id int64) (*entity.Vehicle, error) {
	defer r.s.lockUnless(r.tx)()
	if v, ok := r.s.vehicles[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *vehicleRepo) Update(v *entity.Vehicle) error {
	defer r.s.lockUnless(r.tx)()
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r *vehicleRepo) ListActive(limit, offset int) ([]*entity.Vehicle, error) {
	defer r.s.lockUnless(r.tx)()
	var list []*entity.Vehicle
	for _, id := range sortedIDs(r.s.vehicles) {
		v := r.s.vehicles[id]
		if v.Active {
			list = append(list, &v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

type clientSiteRepo struct {
	s  *Store
	tx bool
}

// ClientSiteRepository devuelve el adaptador de sitios de cliente.
func (s *Store) ClientSiteRepository() repository.ClientSiteRepository { return &clientSiteRepo{s: s} }

// PutClientSite registra un sitio de cliente (la administración real vive
// fuera del motor; esto alimenta el registro de ubicaciones).
func (s *Store) PutClientSite(site entity.ClientSite) entity.ClientSite {
	s.mu.Lock()
	defer s.mu.Unlock()
	if site.ID == 0 {
		site.ID = s.genID()
	}
	s.clientSites[site.ID] = site
	return site
}

func (r *clientSiteRepo) GetByID(id int64) (*entity.ClientSite, error) {
	defer r.s.lockUnless(r.tx)()
	if c, ok := r.s.clientSites[id]; ok {
		return &c, nil
	}
	return nil, nil
}

// ── Stock ────────────────────────────────────────────────────────────────────

type stockRepo struct {
	s  *Store
	tx bool
}

// StockEntryRepository devuelve el adaptador de entradas de stock.
func (s *Store) StockEntryRepository() repository.StockEntryRepository { return &stockRepo{s: s} }

func (r *stockRepo) Get(itemID int64, loc entity.LocationRef) (*entity.StockEntry, error) {
	defer r.s.lockUnless(r.tx)()
	return r.get(itemID, loc), nil
}

// GetForUpdate en memoria equivale a Get: el mutex del store ya serializa las
// mutaciones concurrentes.
func (r *stockRepo) GetForUpdate(itemID int64, loc entity.LocationRef) (*entity.StockEntry, error) {
	defer r.s.lockUnless(r.tx)()
	return r.get(itemID, loc), nil
}

func (r *stockRepo) get(itemID int64, loc entity.LocationRef) *entity.StockEntry {
	key := stockKey{itemID: itemID, locationType: loc.Type, locationID: loc.ID}
	if e, ok := r.s.stock[key]; ok {
		return &e
	}
	return &entity.StockEntry{ItemID: itemID, LocationType: loc.Type, LocationID: loc.ID}
}

func (r *stockRepo) Upsert(entry *entity.StockEntry) error {
	defer r.s.lockUnless(r.tx)()
	key := stockKey{itemID: entry.ItemID, locationType: entry.LocationType, locationID: entry.LocationID}
	r.s.stock[key] = *entry
	return nil
}

func (r *stockRepo) ListByLocation(loc entity.LocationRef) ([]*entity.StockEntry, error) {
	defer r.s.lockUnless(r.tx)()
	return r.filter(func(e entity.StockEntry) bool {
		return e.LocationType == loc.Type && e.LocationID == loc.ID
	}), nil
}

func (r *stockRepo) ListByItem(itemID int64) ([]*entity.StockEntry, error) {
	defer r.s.lockUnless(r.tx)()
	return r.filter(func(e entity.StockEntry) bool { return e.ItemID == itemID }), nil
}

func (r *stockRepo) ListBelowMinimum() ([]*entity.StockEntry, error) {
	defer r.s.lockUnless(r.tx)()
	return r.filter(entity.StockEntry.BelowMinimum), nil
}

func (r *stockRepo) filter(keep func(entity.StockEntry) bool) []*entity.StockEntry {
	var list []*entity.StockEntry
	for _, e := range r.s.stock {
		if keep(e) {
			entry := e
			list = append(list, &entry)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ItemID != list[j].ItemID {
			return list[i].ItemID < list[j].ItemID
		}
		if list[i].LocationType != list[j].LocationType {
			return list[i].LocationType < list[j].LocationType
		}
		return list[i].LocationID < list[j].LocationID
	})
	return list
}

func (r *stockRepo) AggregateByItem(itemID int64) (int64, error) {
	defer r.s.lockUnless(r.tx)()
	var total int64
	for _, e := range r.s.stock {
		if e.ItemID == itemID {
			total += e.Quantity
		}
	}
	return total, nil
}

func (r *stockRepo) AggregateAll() (map[int64]int64, error) {
	defer r.s.lockUnless(r.tx)()
	totals := make(map[int64]int64)
	for _, e := range r.s.stock {
		totals[e.ItemID] += e.Quantity
	}
	return totals, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct {
	s  *Store
	tx bool
}

// StockMovementRepository devuelve el adaptador de auditoría del libro.
func (s *Store) StockMovementRepository() repository.StockMovementRepository {
	return &movementRepo{s: s}
}

func (r *movementRepo) Create(m *entity.StockMovement) error {
	defer r.s.lockUnless(r.tx)()
	m.ID = r.s.genID()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) ListByItem(itemID int64, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.s.lockUnless(r.tx)()
	return r.filter(func(m entity.StockMovement) bool { return m.ItemID == itemID }, limit, offset), nil
}

func (r *movementRepo) ListByLocation(loc entity.LocationRef, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.s.lockUnless(r.tx)()
	return r.filter(func(m entity.StockMovement) bool {
		return m.LocationType == loc.Type && m.LocationID == loc.ID
	}, limit, offset), nil
}

func (r *movementRepo) filter(keep func(entity.StockMovement) bool, limit, offset int) []*entity.StockMovement {
	var list []*entity.StockMovement
	// más reciente primero
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if keep(r.s.movements[i]) {
			m := r.s.movements[i]
			list = append(list, &m)
		}
	}
	return page(list, limit, offset)
}

// ── Traslados ────────────────────────────────────────────────────────────────

type transferRepo struct {
	s  *Store
	tx bool
}

// TransferOrderRepository devuelve el adaptador de órdenes de traslado.
func (s *Store) TransferOrderRepository() repository.TransferOrderRepository {
	return &transferRepo{s: s}
}

func (r *transferRepo) Create(order *entity.TransferOrder) error {
	defer r.s.lockUnless(r.tx)()
	order.ID = r.s.genID()
	for i := range order.Lines {
		order.Lines[i].ID = r.s.genID()
		order.Lines[i].TransferID = order.ID
		r.s.lines[order.Lines[i].ID] = order.Lines[i]
	}
	stored := *order
	stored.Lines = append([]entity.TransferLineItem(nil), order.Lines...)
	r.s.transfers[order.ID] = stored
	return nil
}

func (r *transferRepo) GetByID(id int64) (*entity.TransferOrder, error) {
	defer r.s.lockUnless(r.tx)()
	return r.get(id), nil
}

func (r *transferRepo) GetByIDForUpdate(id int64) (*entity.TransferOrder, error) {
	defer r.s.lockUnless(r.tx)()
	return r.get(id), nil
}

func (r *transferRepo) get(id int64) *entity.TransferOrder {
	o, ok := r.s.transfers[id]
	if !ok {
		return nil
	}
	o.Lines = append([]entity.TransferLineItem(nil), o.Lines...)
	return &o
}

func (r *transferRepo) Update(order *entity.TransferOrder) error {
	defer r.s.lockUnless(r.tx)()
	stored, ok := r.s.transfers[order.ID]
	if !ok {
		return nil
	}
	stored.Status = order.Status
	stored.ApprovedBy = order.ApprovedBy
	stored.CompletedBy = order.CompletedBy
	stored.ScheduledDate = order.ScheduledDate
	stored.ApprovedAt = order.ApprovedAt
	stored.CompletedAt = order.CompletedAt
	r.s.transfers[order.ID] = stored
	return nil
}

func (r *transferRepo) UpdateLine(line *entity.TransferLineItem) error {
	defer r.s.lockUnless(r.tx)()
	stored, ok := r.s.lines[line.ID]
	if !ok {
		return nil
	}
	stored.ApprovedQuantity = line.ApprovedQuantity
	stored.ActualQuantity = line.ActualQuantity
	r.s.lines[line.ID] = stored
	order := r.s.transfers[stored.TransferID]
	for i := range order.Lines {
		if order.Lines[i].ID == line.ID {
			order.Lines[i] = stored
		}
	}
	r.s.transfers[stored.TransferID] = order
	return nil
}

func (r *transferRepo) List(filter repository.TransferFilter) ([]*entity.TransferOrder, error) {
	defer r.s.lockUnless(r.tx)()
	var list []*entity.TransferOrder
	for _, id := range sortedIDs(r.s.transfers) {
		o := r.s.transfers[id]
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		if filter.From != nil && o.RequestedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.RequestedAt.After(*filter.To) {
			continue
		}
		o.Lines = append([]entity.TransferLineItem(nil), o.Lines...)
		list = append(list, &o)
	}
	// más reciente primero, como el backend SQL
	sort.Slice(list, func(i, j int) bool {
		if !list[i].RequestedAt.Equal(list[j].RequestedAt) {
			return list[i].RequestedAt.After(list[j].RequestedAt)
		}
		return list[i].ID > list[j].ID
	})
	return page(list, filter.Limit, filter.Offset), nil
}

// ── Ajustes ──────────────────────────────────────────────────────────────────

type adjustmentRepo struct {
	s  *Store
	tx bool
}

// AdjustmentRepository devuelve el adaptador de ajustes.
func (s *Store) AdjustmentRepository() repository.AdjustmentRepository {
	return &adjustmentRepo{s: s}
}

func (r *adjustmentRepo) Create(a *entity.Adjustment) error {
	defer r.s.lockUnless(r.tx)()
	a.ID = r.s.genID()
	r.s.adjustments[a.ID] = *a
	return nil
}

func (r *adjustmentRepo) GetByID(id int64) (*entity.Adjustment, error) {
	defer r.s.lockUnless(r.tx)()
	if a, ok := r.s.adjustments[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *adjustmentRepo) List(filter repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	defer r.s.lockUnless(r.tx)()
	var list []*entity.Adjustment
	for _, id := range sortedIDs(r.s.adjustments) {
		a := r.s.adjustments[id]
		if filter.ItemID != 0 && a.ItemID != filter.ItemID {
			continue
		}
		if filter.LocationType != "" && a.LocationType != filter.LocationType {
			continue
		}
		if filter.LocationID != 0 && a.LocationID != filter.LocationID {
			continue
		}
		if filter.PerformedBy != 0 && a.PerformedBy != filter.PerformedBy {
			continue
		}
		if filter.Reason != "" && a.Reason != filter.Reason {
			continue
		}
		if filter.From != nil && a.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.CreatedAt.After(*filter.To) {
			continue
		}
		list = append(list, &a)
	}
	// más reciente primero
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return page(list, filter.Limit, filter.Offset), nil
}
