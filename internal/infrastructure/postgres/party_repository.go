package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo lee clientes, proveedores y empleados.
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador de contrapartes.
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

var partyTables = map[string]string{
	entity.PartyClient:   "clients",
	entity.PartySupplier: "suppliers",
	entity.PartyEmployee: "employees",
}

// Get devuelve nil, nil si la contraparte no existe.
func (r *PartyRepo) Get(ctx context.Context, kind string, id int64) (*entity.Party, error) {
	table, ok := partyTables[kind]
	if !ok {
		return nil, fmt.Errorf("tipo de contraparte desconocido %q", kind)
	}
	p := entity.Party{Kind: kind}
	err := r.q.QueryRow(ctx, `SELECT id, name, active FROM `+table+` WHERE id = $1`, id).Scan(&p.ID, &p.Name, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return &p, nil
}
