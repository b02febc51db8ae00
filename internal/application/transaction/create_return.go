package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

// CreateReturn registra una devolución sobre una venta: no se puede devolver más de lo vendido
// por línea (sumando devoluciones previas). Reintegra stock con un movimiento de Entrada por línea.
func (e *Engine) CreateReturn(ctx context.Context, in CreateReturnInput) (*entity.SaleReturn, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	issuedAt := e.issuedAt(in.IssuedAt)
	batch := e.batchID()

	var out *entity.SaleReturn
	err := e.tx.Run(ctx, func(r repository.Repositories) error {
		exists, err := r.Returns.FolioExists(ctx, in.Folio)
		if err != nil {
			return fmt.Errorf("verificar folio: %w", err)
		}
		if exists {
			return domain.Conflictf("folio de devolución %q ya existe", in.Folio)
		}
		sale, err := r.Sales.GetByID(ctx, in.SaleID)
		if err != nil {
			return fmt.Errorf("leer venta %d: %w", in.SaleID, err)
		}
		if sale == nil {
			return domain.NotFoundf("venta %d", in.SaleID)
		}
		if sale.Status == entity.DocumentStatusCancelled {
			return domain.Validationf("la venta %d está cancelada", sale.ID)
		}

		// Las líneas de la venta se bloquean primero: devoluciones concurrentes se serializan aquí.
		saleLines, err := r.Sales.GetLinesForUpdate(ctx, sale.ID)
		if err != nil {
			return fmt.Errorf("bloquear líneas de venta %d: %w", sale.ID, err)
		}
		byID := make(map[int64]*entity.SaleLine, len(saleLines))
		for _, sl := range saleLines {
			byID[sl.ID] = sl
		}
		returned, err := r.Returns.ReturnedBySaleLine(ctx, sale.ID)
		if err != nil {
			return fmt.Errorf("consultar devoluciones previas: %w", err)
		}

		requested := make(map[int64]int64, len(in.Lines))
		itemIDs := make([]int64, len(in.Lines))
		for i, l := range in.Lines {
			sl, ok := byID[l.SaleLineID]
			if !ok {
				return domain.NotFoundf("línea %d en la venta %d", l.SaleLineID, sale.ID)
			}
			if l.StockItemID != nil && *l.StockItemID != sl.StockItemID {
				return domain.Validationf("línea %d: el artículo %d no corresponde a la línea de venta", i+1, *l.StockItemID)
			}
			if l.Quantity > sl.Quantity-returned[sl.ID]-requested[sl.ID] {
				return domain.Validationf("línea de venta %d: vendido %d, devuelto %d, solicitado %d",
					sl.ID, sl.Quantity, returned[sl.ID], addCapped(requested[sl.ID], l.Quantity))
			}
			requested[sl.ID] += l.Quantity
			itemIDs[i] = sl.StockItemID
		}

		items, err := lockItems(ctx, r.Items, itemIDs, false)
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		lineSubtotals := make([]decimal.Decimal, len(in.Lines))
		for i, l := range in.Lines {
			sl := byID[l.SaleLineID]
			lineSubtotals[i] = pricing.ReturnedSubtotal(sl.Subtotal, sl.Quantity, l.Quantity)
			subtotal = subtotal.Add(lineSubtotals[i])
		}
		taxes := pricing.ProratedTaxes(sale.Taxes, sale.Subtotal, subtotal)

		now := e.now()
		ret := &entity.SaleReturn{
			Folio:     in.Folio,
			SaleID:    sale.ID,
			UserID:    in.UserID,
			IssuedAt:  issuedAt,
			Reason:    in.Reason,
			Subtotal:  subtotal,
			Taxes:     taxes,
			Total:     subtotal.Add(taxes),
			Status:    entity.DocumentStatusCompleted,
			Notes:     in.Notes,
			CreatedAt: now,
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			return fmt.Errorf("crear devolución: %w", err)
		}
		for i, l := range in.Lines {
			sl := byID[l.SaleLineID]
			reason := l.Reason
			if reason == "" {
				reason = in.Reason
			}
			line := &entity.ReturnLine{
				ReturnID:    ret.ID,
				SaleLineID:  sl.ID,
				StockItemID: sl.StockItemID,
				Quantity:    l.Quantity,
				UnitPrice:   sl.UnitPrice,
				Reason:      reason,
				Subtotal:    lineSubtotals[i],
			}
			if err := r.Returns.CreateLine(ctx, line); err != nil {
				return fmt.Errorf("crear línea de devolución: %w", err)
			}
			if _, err := apply(ctx, r, items[sl.StockItemID], movement{
				kind:    entity.MovementKindIn,
				qty:     l.Quantity,
				refType: entity.ReferenceReturn,
				refID:   ref(ret.ID),
				batchID: batch,
				userID:  in.UserID,
				reason:  reason,
				at:      now,
			}); err != nil {
				return err
			}
		}

		out, err = loadReturn(ctx, r.Returns, ret.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Int64("return_id", out.ID).Int64("sale_id", out.SaleID).
		Str("total", out.Total.String()).Msg("devolución registrada")
	return out, nil
}

func loadReturn(ctx context.Context, returns repository.ReturnRepository, id int64) (*entity.SaleReturn, error) {
	ret, err := returns.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer devolución %d: %w", id, err)
	}
	if ret == nil {
		return nil, domain.NotFoundf("devolución %d", id)
	}
	if ret.Lines, err = returns.GetLines(ctx, id); err != nil {
		return nil, fmt.Errorf("leer líneas de devolución %d: %w", id, err)
	}
	return ret, nil
}
