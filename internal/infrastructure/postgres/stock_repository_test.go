package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
	"github.com/tu-usuario/poolstock-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Querier falso: registra cada sentencia y sus argumentos, y responde QueryRow
// con filas programadas en orden. Permite verificar el SQL emitido sin una
// base de datos viva.
// ──────────────────────────────────────────────────────────────────────────────

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeQuerier struct {
	rows     []fakeRow
	queryErr error
	calls    []string
	args     [][]any
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, sql)
	q.args = append(q.args, args)
	return pgconn.CommandTag{}, nil
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, sql)
	q.args = append(q.args, args)
	return nil, q.queryErr
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, sql)
	q.args = append(q.args, args)
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func noRow(dest ...any) error { return pgx.ErrNoRows }

// entryRow devuelve un scan que llena una entrada de stock en el orden de
// columnas del repositorio.
func entryRow(itemID int64, loc entity.LocationRef, quantity int64) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*int64) = itemID
		*dest[1].(*entity.LocationType) = loc.Type
		*dest[2].(*int64) = loc.ID
		*dest[3].(*int64) = quantity
		*dest[6].(*time.Time) = time.Now()
		return nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetForUpdate
// ──────────────────────────────────────────────────────────────────────────────

// Si la fila no existe, GetForUpdate debe sembrarla en cero (INSERT ... ON
// CONFLICT DO NOTHING) y volver a bloquearla. Sin la siembra, dos
// transacciones que crean la misma clave leerían ambas cero y la segunda
// pisaría el incremento de la primera.
func TestStockEntryRepoGetForUpdateSiembraFilaAusente(t *testing.T) {
	loc := entity.LocationRef{Type: entity.LocationVehicle, ID: 3}
	q := &fakeQuerier{rows: []fakeRow{
		{scan: noRow},
		{scan: entryRow(1, loc, 0)},
	}}
	repo := postgres.NewStockEntryRepository(q)

	entry, err := repo.GetForUpdate(1, loc)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(0), entry.Quantity)

	require.Len(t, q.calls, 3)
	assert.Contains(t, q.calls[0], "FOR UPDATE")
	assert.Contains(t, q.calls[1], "INSERT INTO stock_entries")
	assert.Contains(t, q.calls[1], "ON CONFLICT")
	assert.Contains(t, q.calls[1], "DO NOTHING")
	assert.Contains(t, q.calls[2], "FOR UPDATE")
}

// Con fila existente no debe haber siembra: un solo SELECT ... FOR UPDATE.
func TestStockEntryRepoGetForUpdateFilaExistente(t *testing.T) {
	loc := entity.LocationRef{Type: entity.LocationWarehouse, ID: 2}
	q := &fakeQuerier{rows: []fakeRow{
		{scan: entryRow(1, loc, 45)},
	}}
	repo := postgres.NewStockEntryRepository(q)

	entry, err := repo.GetForUpdate(1, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(45), entry.Quantity)
	require.Len(t, q.calls, 1)
	assert.Contains(t, q.calls[0], "FOR UPDATE")
}

// Un error de la siembra se propaga envuelto.
func TestStockEntryRepoGetForUpdateErrorDistintoDeNoRows(t *testing.T) {
	loc := entity.LocationRef{Type: entity.LocationWarehouse, ID: 2}
	q := &fakeQuerier{rows: []fakeRow{
		{scan: func(dest ...any) error { return errors.New("conexión perdida") }},
	}}
	repo := postgres.NewStockEntryRepository(q)

	_, err := repo.GetForUpdate(1, loc)
	require.Error(t, err)
	require.Len(t, q.calls, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Límite por defecto de los listados
// ──────────────────────────────────────────────────────────────────────────────

// Límite no positivo se normaliza al tamaño de página por defecto, igual que
// en el backend en memoria y en la capa HTTP.
func TestStockMovementRepoListLimitePorDefecto(t *testing.T) {
	q := &fakeQuerier{queryErr: errors.New("sin filas en este test")}
	repo := postgres.NewStockMovementRepository(q)

	_, err := repo.ListByItem(1, 0, 0)
	require.Error(t, err)
	require.Len(t, q.args, 1)
	assert.Equal(t, 50, q.args[0][1])

	_, err = repo.ListByLocation(entity.LocationRef{Type: entity.LocationWarehouse, ID: 2}, -1, 0)
	require.Error(t, err)
	require.Len(t, q.args, 2)
	assert.Equal(t, 50, q.args[1][2])
}

func TestAdjustmentRepoListLimitePorDefecto(t *testing.T) {
	q := &fakeQuerier{queryErr: errors.New("sin filas en este test")}
	repo := postgres.NewAdjustmentRepository(q)

	_, err := repo.List(repository.AdjustmentFilter{})
	require.Error(t, err)
	require.Len(t, q.args, 1)
	assert.Equal(t, 50, q.args[0][0])
}

func TestTransferRepoListLimitePorDefecto(t *testing.T) {
	q := &fakeQuerier{queryErr: errors.New("sin filas en este test")}
	repo := postgres.NewTransferOrderRepository(q)

	_, err := repo.List(repository.TransferFilter{})
	require.Error(t, err)
	require.Len(t, q.args, 1)
	assert.Equal(t, 50, q.args[0][0])
}
