package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para los artículos con existencia.
// GetByID/GetForUpdate devuelven nil, nil cuando el artículo no existe.
type StockItemRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.StockItem, error)
	GetByCode(ctx context.Context, code string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.StockItem, error)
	// UpdateStock es el único escritor de la columna stock; siempre va acompañado de un movimiento.
	UpdateStock(ctx context.Context, id int64, stock int64, movedAt time.Time) error
	UpdatePurchasePrice(ctx context.Context, id int64, price decimal.Decimal) error
	// ListBelowMinimum artículos activos con stock <= stock mínimo, mayor déficit primero.
	ListBelowMinimum(ctx context.Context, limit int) ([]*entity.StockItem, error)
}
