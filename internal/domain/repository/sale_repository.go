package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	FolioExists(ctx context.Context, folio string) (bool, error)
	// Create inserta la cabecera y asigna sale.ID. Folio duplicado -> domain.ErrConflict.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	GetLines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error)
	// GetLinesForUpdate bloquea las líneas de la venta (devoluciones concurrentes).
	GetLinesForUpdate(ctx context.Context, saleID int64) ([]*entity.SaleLine, error)
	ListByDateRange(ctx context.Context, from, to time.Time, limit int) ([]*entity.Sale, error)
}
