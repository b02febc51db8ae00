package transaction

import (
	"context"
	"fmt"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

// CreatePurchase registra una compra: suma stock con un movimiento de Entrada por línea
// y actualiza el precio de compra del artículo al costo promedio ponderado.
func (e *Engine) CreatePurchase(ctx context.Context, in CreatePurchaseInput) (*entity.Purchase, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	lines := make([]pricing.Line, len(in.Lines))
	itemIDs := make([]int64, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = pricing.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		itemIDs[i] = l.StockItemID
	}
	totals := e.pricing.PurchaseTotals(lines)
	issuedAt := e.issuedAt(in.IssuedAt)
	batch := e.batchID()

	var out *entity.Purchase
	err := e.tx.Run(ctx, func(r repository.Repositories) error {
		exists, err := r.Purchases.FolioExists(ctx, in.Folio)
		if err != nil {
			return fmt.Errorf("verificar folio: %w", err)
		}
		if exists {
			return domain.Conflictf("folio de compra %q ya existe", in.Folio)
		}
		if err := requireParty(ctx, r.Parties, entity.PartySupplier, in.SupplierID); err != nil {
			return err
		}
		items, err := lockItems(ctx, r.Items, itemIDs, true)
		if err != nil {
			return err
		}

		now := e.now()
		purchase := &entity.Purchase{
			Folio:      in.Folio,
			SupplierID: in.SupplierID,
			UserID:     in.UserID,
			IssuedAt:   issuedAt,
			Subtotal:   totals.Subtotal,
			Taxes:      totals.Taxes,
			Total:      totals.Total,
			Status:     entity.DocumentStatusCompleted,
			Notes:      in.Notes,
			CreatedAt:  now,
		}
		if err := r.Purchases.Create(ctx, purchase); err != nil {
			return fmt.Errorf("crear compra: %w", err)
		}
		for i, l := range in.Lines {
			line := &entity.PurchaseLine{
				PurchaseID:  purchase.ID,
				StockItemID: l.StockItemID,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Subtotal:    lines[i].Subtotal(),
			}
			if err := r.Purchases.CreateLine(ctx, line); err != nil {
				return fmt.Errorf("crear línea de compra: %w", err)
			}
			item := items[l.StockItemID]
			cost := pricing.WeightedCost(item.Stock, item.PurchasePrice, l.Quantity, l.UnitPrice)
			if err := r.Items.UpdatePurchasePrice(ctx, item.ID, cost); err != nil {
				return fmt.Errorf("actualizar costo %d: %w", item.ID, err)
			}
			item.PurchasePrice = cost
			if _, err := apply(ctx, r, item, movement{
				kind:    entity.MovementKindIn,
				qty:     l.Quantity,
				refType: entity.ReferencePurchase,
				refID:   ref(purchase.ID),
				batchID: batch,
				userID:  in.UserID,
				reason:  "Compra " + in.Folio,
				at:      now,
			}); err != nil {
				return err
			}
		}

		out, err = loadPurchase(ctx, r.Purchases, purchase.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Int64("purchase_id", out.ID).Str("folio", out.Folio).
		Str("total", out.Total.String()).Int("lines", len(out.Lines)).Msg("compra registrada")
	return out, nil
}

func loadPurchase(ctx context.Context, purchases repository.PurchaseRepository, id int64) (*entity.Purchase, error) {
	p, err := purchases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer compra %d: %w", id, err)
	}
	if p == nil {
		return nil, domain.NotFoundf("compra %d", id)
	}
	if p.Lines, err = purchases.GetLines(ctx, id); err != nil {
		return nil, fmt.Errorf("leer líneas de compra %d: %w", id, err)
	}
	return p, nil
}
