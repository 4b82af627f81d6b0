package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

var _ repository.ClientSiteRepository = (*ClientSiteRepo)(nil)

// ClientSiteRepo lectura de sitios de cliente. La administración de clientes
// vive fuera del motor de stock; aquí solo se resuelve existencia.
type ClientSiteRepo struct {
	q Querier
}

// NewClientSiteRepository construye el adaptador.
func NewClientSiteRepository(q Querier) *ClientSiteRepo {
	return &ClientSiteRepo{q: q}
}

// GetByID obtiene un sitio de cliente por ID; nil si no existe.
func (r *ClientSiteRepo) GetByID(id int64) (*entity.ClientSite, error) {
	query := `
		SELECT id, name, active, created_at
		FROM client_sites WHERE id = $1`
	var s entity.ClientSite
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client site: %w", err)
	}
	return &s, nil
}
