package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del kardex. Es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	// ListByItem devuelve los movimientos más recientes primero.
	ListByItem(ctx context.Context, stockItemID int64, from, to *time.Time, limit int) ([]*entity.StockMovement, error)
	// ListAllByItem devuelve el historial completo en orden cronológico (para replay).
	ListAllByItem(ctx context.Context, stockItemID int64) ([]*entity.StockMovement, error)
}
