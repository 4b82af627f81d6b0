package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// defaultPageSize tamaño de página cuando el llamador no indica límite.
// Debe coincidir con el valor por defecto de la capa HTTP.
const defaultPageSize = 50

// normalizeLimit aplica el tamaño de página por defecto a límites no positivos.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return limit
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
