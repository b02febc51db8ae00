package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// ReturnRepository define el puerto de persistencia para devoluciones de venta.
type ReturnRepository interface {
	FolioExists(ctx context.Context, folio string) (bool, error)
	Create(ctx context.Context, ret *entity.SaleReturn) error
	CreateLine(ctx context.Context, line *entity.ReturnLine) error
	GetByID(ctx context.Context, id int64) (*entity.SaleReturn, error)
	GetLines(ctx context.Context, returnID int64) ([]*entity.ReturnLine, error)
	ListBySale(ctx context.Context, saleID int64) ([]*entity.SaleReturn, error)
	ListByDateRange(ctx context.Context, from, to time.Time, limit int) ([]*entity.SaleReturn, error)
	// ReturnedBySaleLine suma lo ya devuelto por línea de venta (clave: sale line id).
	ReturnedBySaleLine(ctx context.Context, saleID int64) (map[int64]int64, error)
}
