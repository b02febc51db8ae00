package transaction

import (
	"context"
	"fmt"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

func saleLine(l SaleLineInput) pricing.Line {
	return pricing.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice, Discount: l.Discount}
}

// CreateSale registra una venta: bloquea los artículos, verifica existencias antes de escribir,
// inserta cabecera y líneas y descuenta stock con un movimiento de Salida por línea.
func (e *Engine) CreateSale(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	lines := make([]pricing.Line, len(in.Lines))
	itemIDs := make([]int64, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = saleLine(l)
		itemIDs[i] = l.StockItemID
	}
	totals := e.pricing.SaleTotals(lines)
	issuedAt := e.issuedAt(in.IssuedAt)
	batch := e.batchID()

	var (
		out     *entity.Sale
		touched []*entity.StockItem
	)
	err := e.tx.Run(ctx, func(r repository.Repositories) error {
		exists, err := r.Sales.FolioExists(ctx, in.Folio)
		if err != nil {
			return fmt.Errorf("verificar folio: %w", err)
		}
		if exists {
			return domain.Conflictf("folio de venta %q ya existe", in.Folio)
		}
		if err := requireParty(ctx, r.Parties, entity.PartyClient, in.ClientID); err != nil {
			return err
		}
		if err := requireParty(ctx, r.Parties, entity.PartyEmployee, in.EmployeeID); err != nil {
			return err
		}

		items, err := lockItems(ctx, r.Items, itemIDs, true)
		if err != nil {
			return err
		}
		// Suficiencia acumulada por artículo antes de cualquier escritura.
		requested := make(map[int64]int64, len(items))
		for _, l := range in.Lines {
			requested[l.StockItemID] = addCapped(requested[l.StockItemID], l.Quantity)
		}
		for _, it := range sortedItems(items) {
			if requested[it.ID] > it.Stock {
				return &domain.InsufficientStockError{StockItemID: it.ID, Requested: requested[it.ID], Available: it.Stock}
			}
		}

		now := e.now()
		sale := &entity.Sale{
			Folio:         in.Folio,
			ClientID:      in.ClientID,
			EmployeeID:    in.EmployeeID,
			UserID:        in.UserID,
			IssuedAt:      issuedAt,
			PaymentMethod: in.PaymentMethod,
			Subtotal:      totals.Subtotal,
			Taxes:         totals.Taxes,
			Discount:      totals.Discount,
			Total:         totals.Total,
			Status:        entity.DocumentStatusCompleted,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("crear venta: %w", err)
		}
		for i, l := range in.Lines {
			line := &entity.SaleLine{
				SaleID:      sale.ID,
				StockItemID: l.StockItemID,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Discount:    l.Discount,
				Subtotal:    lines[i].Subtotal(),
			}
			if err := r.Sales.CreateLine(ctx, line); err != nil {
				return fmt.Errorf("crear línea de venta: %w", err)
			}
			if _, err := apply(ctx, r, items[l.StockItemID], movement{
				kind:    entity.MovementKindOut,
				qty:     -l.Quantity,
				refType: entity.ReferenceSale,
				refID:   ref(sale.ID),
				batchID: batch,
				userID:  in.UserID,
				reason:  "Venta " + in.Folio,
				at:      now,
			}); err != nil {
				return err
			}
		}

		out, err = loadSale(ctx, r.Sales, sale.ID)
		if err != nil {
			return err
		}
		touched = sortedItems(items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Int64("sale_id", out.ID).Str("folio", out.Folio).
		Str("total", out.Total.String()).Int("lines", len(out.Lines)).Msg("venta registrada")
	e.warnLowStock(touched)
	return out, nil
}

// loadSale relee la venta con sus líneas.
func loadSale(ctx context.Context, sales repository.SaleRepository, id int64) (*entity.Sale, error) {
	sale, err := sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer venta %d: %w", id, err)
	}
	if sale == nil {
		return nil, domain.NotFoundf("venta %d", id)
	}
	if sale.Lines, err = sales.GetLines(ctx, id); err != nil {
		return nil, fmt.Errorf("leer líneas de venta %d: %w", id, err)
	}
	return sale, nil
}
