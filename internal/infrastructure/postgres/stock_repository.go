package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación de StockEntryRepository sobre PostgreSQL
// (usable con pool o tx). Clave única (item_id, location_type, location_id).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

const stockEntryColumns = `item_id, location_type, location_id, quantity, min_level, max_level, updated_at`

func scanStockEntry(row pgx.Row) (*entity.StockEntry, error) {
	var s entity.StockEntry
	err := row.Scan(
		&s.ItemID, &s.LocationType, &s.LocationID, &s.Quantity, &s.MinLevel, &s.MaxLevel, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene la entrada de stock; devuelve una entrada en cero si no existe fila.
func (r *StockEntryRepo) Get(itemID int64, loc entity.LocationRef) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE item_id = $1 AND location_type = $2 AND location_id = $3`
	s, err := scanStockEntry(r.q.QueryRow(context.Background(), query, itemID, loc.Type, loc.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ItemID: itemID, LocationType: loc.Type, LocationID: loc.ID}, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE) para
// serializar mutaciones concurrentes sobre la misma clave. Si la fila no
// existe la siembra en cero y la vuelve a bloquear: la clave debe existir
// antes del FOR UPDATE, de lo contrario dos transacciones que crean la misma
// entrada leerían ambas cero y la segunda pisaría el incremento de la primera.
func (r *StockEntryRepo) GetForUpdate(itemID int64, loc entity.LocationRef) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE item_id = $1 AND location_type = $2 AND location_id = $3
		FOR UPDATE`
	s, err := scanStockEntry(r.q.QueryRow(context.Background(), query, itemID, loc.Type, loc.ID))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock entry for update: %w", err)
	}
	seed := `
		INSERT INTO stock_entries (item_id, location_type, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (item_id, location_type, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, itemID, loc.Type, loc.ID); err != nil {
		return nil, fmt.Errorf("seed stock entry: %w", err)
	}
	s, err = scanStockEntry(r.q.QueryRow(context.Background(), query, itemID, loc.Type, loc.ID))
	if err != nil {
		return nil, fmt.Errorf("get stock entry for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza la entrada (creación perezosa al primer ingreso).
func (r *StockEntryRepo) Upsert(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (item_id, location_type, location_id, quantity, min_level, max_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_id, location_type, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		entry.ItemID, entry.LocationType, entry.LocationID, entry.Quantity,
		entry.MinLevel, entry.MaxLevel, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock entry: %w", err)
	}
	return nil
}

// ListByLocation entradas de una ubicación.
func (r *StockEntryRepo) ListByLocation(loc entity.LocationRef) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE location_type = $1 AND location_id = $2
		ORDER BY item_id`
	return r.list(query, loc.Type, loc.ID)
}

// ListByItem entradas de un artículo sobre todas las ubicaciones.
func (r *StockEntryRepo) ListByItem(itemID int64) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE item_id = $1
		ORDER BY location_type, location_id`
	return r.list(query, itemID)
}

// ListBelowMinimum entradas con cantidad por debajo de su mínimo configurado.
func (r *StockEntryRepo) ListBelowMinimum() ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE min_level IS NOT NULL AND quantity < min_level
		ORDER BY item_id`
	return r.list(query)
}

func (r *StockEntryRepo) list(query string, args ...any) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var s entity.StockEntry
		if err := rows.Scan(
			&s.ItemID, &s.LocationType, &s.LocationID, &s.Quantity, &s.MinLevel, &s.MaxLevel, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// AggregateByItem suma la cantidad del artículo sobre todas las ubicaciones.
func (r *StockEntryRepo) AggregateByItem(itemID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_entries WHERE item_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&total); err != nil {
		return 0, fmt.Errorf("aggregate stock: %w", err)
	}
	return total, nil
}

// AggregateAll suma por artículo sobre todas las ubicaciones.
func (r *StockEntryRepo) AggregateAll() (map[int64]int64, error) {
	query := `SELECT item_id, COALESCE(SUM(quantity), 0) FROM stock_entries GROUP BY item_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("aggregate all stock: %w", err)
	}
	defer rows.Close()
	totals := make(map[int64]int64)
	for rows.Next() {
		var itemID, total int64
		if err := rows.Scan(&itemID, &total); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		totals[itemID] = total
	}
	return totals, rows.Err()
}
