package transaction

import (
	"context"
	"fmt"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

// AdjustStock aplica un ajuste con signo. El stock resultante no puede quedar negativo.
func (e *Engine) AdjustStock(ctx context.Context, in AdjustStockInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var (
		out  *entity.StockMovement
		item *entity.StockItem
	)
	err := e.tx.Run(ctx, func(r repository.Repositories) error {
		items, err := lockItems(ctx, r.Items, []int64{in.StockItemID}, false)
		if err != nil {
			return err
		}
		item = items[in.StockItemID]
		out, err = e.adjustLocked(ctx, r, item, in.Quantity, in.UserID, in.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Int64("stock_item_id", out.StockItemID).Int64("quantity", out.Quantity).
		Int64("stock", out.StockAfter).Str("reason", out.Reason).Msg("ajuste de stock")
	e.warnLowStock([]*entity.StockItem{item})
	return out, nil
}

// ReconcileCount lleva el stock al valor contado físicamente. Si no hay diferencia no registra
// movimiento y devuelve nil, nil.
func (e *Engine) ReconcileCount(ctx context.Context, in ReconcileCountInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var (
		out  *entity.StockMovement
		item *entity.StockItem
	)
	err := e.tx.Run(ctx, func(r repository.Repositories) error {
		items, err := lockItems(ctx, r.Items, []int64{in.StockItemID}, false)
		if err != nil {
			return err
		}
		item = items[in.StockItemID]
		delta := in.Counted - item.Stock
		if delta == 0 {
			return nil
		}
		out, err = e.adjustLocked(ctx, r, item, delta, in.UserID, in.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		e.log.Debug().Int64("stock_item_id", in.StockItemID).Int64("counted", in.Counted).Msg("conteo sin diferencia")
		return nil, nil
	}
	e.log.Info().Int64("stock_item_id", out.StockItemID).Int64("delta", out.Quantity).
		Int64("counted", in.Counted).Msg("conteo conciliado")
	e.warnLowStock([]*entity.StockItem{item})
	return out, nil
}

func (e *Engine) adjustLocked(ctx context.Context, r repository.Repositories, item *entity.StockItem, qty, userID int64, reason string) (*entity.StockMovement, error) {
	if item.Stock+qty < 0 {
		return nil, domain.Validationf("artículo %d: el ajuste %d deja stock negativo (actual %d)", item.ID, qty, item.Stock)
	}
	mov, err := apply(ctx, r, item, movement{
		kind:    entity.MovementKindAdjustment,
		qty:     qty,
		refType: entity.ReferenceAdjustment,
		batchID: e.batchID(),
		userID:  userID,
		reason:  reason,
		at:      e.now(),
	})
	if err != nil {
		return nil, err
	}
	saved, err := r.Movements.GetByID(ctx, mov.ID)
	if err != nil {
		return nil, fmt.Errorf("leer movimiento %d: %w", mov.ID, err)
	}
	if saved == nil {
		return nil, domain.NotFoundf("movimiento %d", mov.ID)
	}
	return saved, nil
}
