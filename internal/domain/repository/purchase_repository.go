package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	FolioExists(ctx context.Context, folio string) (bool, error)
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateLine(ctx context.Context, line *entity.PurchaseLine) error
	GetByID(ctx context.Context, id int64) (*entity.Purchase, error)
	GetLines(ctx context.Context, purchaseID int64) ([]*entity.PurchaseLine, error)
	ListByDateRange(ctx context.Context, from, to time.Time, limit int) ([]*entity.Purchase, error)
}
