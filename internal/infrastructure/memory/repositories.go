package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

var (
	_ repository.StockItemRepository     = itemRepo{}
	_ repository.StockMovementRepository = movementRepo{}
	_ repository.SaleRepository          = saleRepo{}
	_ repository.PurchaseRepository      = purchaseRepo{}
	_ repository.ReturnRepository        = returnRepo{}
	_ repository.PartyRepository         = partyRepo{}
)

type itemRepo struct{ view }

func (r itemRepo) GetByID(_ context.Context, id int64) (*entity.StockItem, error) {
	defer r.lock()()
	it, ok := r.st().items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r itemRepo) GetByCode(_ context.Context, code string) (*entity.StockItem, error) {
	defer r.lock()()
	for _, it := range r.st().items {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r itemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r itemRepo) UpdateStock(_ context.Context, id int64, stock int64, movedAt time.Time) error {
	defer r.lock()()
	if err := r.s.fault("items.update_stock"); err != nil {
		return err
	}
	it, ok := r.st().items[id]
	if !ok {
		return domain.NotFoundf("artículo %d", id)
	}
	at := movedAt
	it.Stock = stock
	it.LastMovementAt = &at
	it.UpdatedAt = movedAt
	return nil
}

func (r itemRepo) UpdatePurchasePrice(_ context.Context, id int64, price decimal.Decimal) error {
	defer r.lock()()
	if err := r.s.fault("items.update_purchase_price"); err != nil {
		return err
	}
	it, ok := r.st().items[id]
	if !ok {
		return domain.NotFoundf("artículo %d", id)
	}
	it.PurchasePrice = price
	return nil
}

func (r itemRepo) ListBelowMinimum(_ context.Context, limit int) ([]*entity.StockItem, error) {
	defer r.lock()()
	var out []*entity.StockItem
	for _, it := range r.st().items {
		if it.Active && it.BelowMinimum() {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].MinStock-out[i].Stock, out[j].MinStock-out[j].Stock
		if di != dj {
			return di > dj
		}
		return out[i].ID < out[j].ID
	})
	return out[:capLimit(len(out), limit)], nil
}

type movementRepo struct{ view }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.lock()()
	if err := r.s.fault("movements.create"); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return domain.Validationf("%v", err)
	}
	m.ID = r.st().next()
	cp := *m
	r.st().movements = append(r.st().movements, &cp)
	return nil
}

func (r movementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	defer r.lock()()
	for _, m := range r.st().movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r movementRepo) ListByItem(_ context.Context, itemID int64, from, to *time.Time, limit int) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for _, m := range r.st().movements {
		if m.StockItemID == itemID && inRange(m.CreatedAt, from, to) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out[:capLimit(len(out), limit)], nil
}

func (r movementRepo) ListAllByItem(_ context.Context, itemID int64) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for _, m := range r.st().movements {
		if m.StockItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type saleRepo struct{ view }

func (r saleRepo) FolioExists(_ context.Context, folio string) (bool, error) {
	defer r.lock()()
	for _, s := range r.st().sales {
		if s.Folio == folio {
			return true, nil
		}
	}
	return false, nil
}

func (r saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	if err := r.s.fault("sales.create"); err != nil {
		return err
	}
	for _, s := range r.st().sales {
		if s.Folio == sale.Folio {
			return domain.Conflictf("folio de venta %q duplicado", sale.Folio)
		}
	}
	sale.ID = r.st().next()
	cp := *sale
	cp.Lines = nil
	r.st().sales[sale.ID] = &cp
	return nil
}

func (r saleRepo) CreateLine(_ context.Context, line *entity.SaleLine) error {
	defer r.lock()()
	if err := r.s.fault("sales.create_line"); err != nil {
		return err
	}
	line.ID = r.st().next()
	cp := *line
	r.st().saleLines = append(r.st().saleLines, &cp)
	return nil
}

func (r saleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	defer r.lock()()
	s, ok := r.st().sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r saleRepo) GetLines(_ context.Context, saleID int64) ([]*entity.SaleLine, error) {
	defer r.lock()()
	var out []*entity.SaleLine
	for _, l := range r.st().saleLines {
		if l.SaleID == saleID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r saleRepo) GetLinesForUpdate(ctx context.Context, saleID int64) ([]*entity.SaleLine, error) {
	return r.GetLines(ctx, saleID)
}

func (r saleRepo) ListByDateRange(_ context.Context, from, to time.Time, limit int) ([]*entity.Sale, error) {
	defer r.lock()()
	var out []*entity.Sale
	for _, s := range r.st().sales {
		if inRange(s.IssuedAt, &from, &to) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return newer(out[i].IssuedAt, out[i].ID, out[j].IssuedAt, out[j].ID) })
	return out[:capLimit(len(out), limit)], nil
}

type purchaseRepo struct{ view }

func (r purchaseRepo) FolioExists(_ context.Context, folio string) (bool, error) {
	defer r.lock()()
	for _, p := range r.st().purchases {
		if p.Folio == folio {
			return true, nil
		}
	}
	return false, nil
}

func (r purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	defer r.lock()()
	if err := r.s.fault("purchases.create"); err != nil {
		return err
	}
	for _, existing := range r.st().purchases {
		if existing.Folio == p.Folio {
			return domain.Conflictf("folio de compra %q duplicado", p.Folio)
		}
	}
	p.ID = r.st().next()
	cp := *p
	cp.Lines = nil
	r.st().purchases[p.ID] = &cp
	return nil
}

func (r purchaseRepo) CreateLine(_ context.Context, line *entity.PurchaseLine) error {
	defer r.lock()()
	if err := r.s.fault("purchases.create_line"); err != nil {
		return err
	}
	line.ID = r.st().next()
	cp := *line
	r.st().purchaseLines = append(r.st().purchaseLines, &cp)
	return nil
}

func (r purchaseRepo) GetByID(_ context.Context, id int64) (*entity.Purchase, error) {
	defer r.lock()()
	p, ok := r.st().purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r purchaseRepo) GetLines(_ context.Context, purchaseID int64) ([]*entity.PurchaseLine, error) {
	defer r.lock()()
	var out []*entity.PurchaseLine
	for _, l := range r.st().purchaseLines {
		if l.PurchaseID == purchaseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r purchaseRepo) ListByDateRange(_ context.Context, from, to time.Time, limit int) ([]*entity.Purchase, error) {
	defer r.lock()()
	var out []*entity.Purchase
	for _, p := range r.st().purchases {
		if inRange(p.IssuedAt, &from, &to) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return newer(out[i].IssuedAt, out[i].ID, out[j].IssuedAt, out[j].ID) })
	return out[:capLimit(len(out), limit)], nil
}

type returnRepo struct{ view }

func (r returnRepo) FolioExists(_ context.Context, folio string) (bool, error) {
	defer r.lock()()
	for _, ret := range r.st().returns {
		if ret.Folio == folio {
			return true, nil
		}
	}
	return false, nil
}

func (r returnRepo) Create(_ context.Context, ret *entity.SaleReturn) error {
	defer r.lock()()
	if err := r.s.fault("returns.create"); err != nil {
		return err
	}
	for _, existing := range r.st().returns {
		if existing.Folio == ret.Folio {
			return domain.Conflictf("folio de devolución %q duplicado", ret.Folio)
		}
	}
	ret.ID = r.st().next()
	cp := *ret
	cp.Lines = nil
	r.st().returns[ret.ID] = &cp
	return nil
}

func (r returnRepo) CreateLine(_ context.Context, line *entity.ReturnLine) error {
	defer r.lock()()
	if err := r.s.fault("returns.create_line"); err != nil {
		return err
	}
	line.ID = r.st().next()
	cp := *line
	r.st().returnLines = append(r.st().returnLines, &cp)
	return nil
}

func (r returnRepo) GetByID(_ context.Context, id int64) (*entity.SaleReturn, error) {
	defer r.lock()()
	ret, ok := r.st().returns[id]
	if !ok {
		return nil, nil
	}
	cp := *ret
	return &cp, nil
}

func (r returnRepo) GetLines(_ context.Context, returnID int64) ([]*entity.ReturnLine, error) {
	defer r.lock()()
	var out []*entity.ReturnLine
	for _, l := range r.st().returnLines {
		if l.ReturnID == returnID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r returnRepo) ListBySale(_ context.Context, saleID int64) ([]*entity.SaleReturn, error) {
	defer r.lock()()
	var out []*entity.SaleReturn
	for _, ret := range r.st().returns {
		if ret.SaleID == saleID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r returnRepo) ListByDateRange(_ context.Context, from, to time.Time, limit int) ([]*entity.SaleReturn, error) {
	defer r.lock()()
	var out []*entity.SaleReturn
	for _, ret := range r.st().returns {
		if inRange(ret.IssuedAt, &from, &to) {
			cp := *ret
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return newer(out[i].IssuedAt, out[i].ID, out[j].IssuedAt, out[j].ID) })
	return out[:capLimit(len(out), limit)], nil
}

func (r returnRepo) ReturnedBySaleLine(_ context.Context, saleID int64) (map[int64]int64, error) {
	defer r.lock()()
	out := map[int64]int64{}
	for _, l := range r.st().returnLines {
		ret, ok := r.st().returns[l.ReturnID]
		if !ok || ret.SaleID != saleID || ret.Status == entity.DocumentStatusCancelled {
			continue
		}
		out[l.SaleLineID] += l.Quantity
	}
	return out, nil
}

type partyRepo struct{ view }

func (r partyRepo) Get(_ context.Context, kind string, id int64) (*entity.Party, error) {
	defer r.lock()()
	p, ok := r.st().parties[kind][id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func newer(ti time.Time, idi int64, tj time.Time, idj int64) bool {
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return idi > idj
}
