package repository

import (
	"context"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// PartyRepository consulta clientes, proveedores y empleados referenciados por documentos.
// Get devuelve nil, nil si no existe.
type PartyRepository interface {
	Get(ctx context.Context, kind string, id int64) (*entity.Party, error)
}
