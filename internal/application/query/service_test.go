package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type env struct {
	store *memory.Store
	eng   *transaction.Engine
	svc   *Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	policy, err := pricing.NewFlatRate(d("0.16"), d("0.16"))
	require.NoError(t, err)
	store := memory.NewStore()
	return &env{store: store, eng: transaction.NewEngine(store, policy, nil), svc: NewService(store.Repositories())}
}

func (e *env) item(t *testing.T, code string, stock, min int64) int64 {
	t.Helper()
	id := e.store.PutItem(entity.StockItem{Code: code, MinStock: min, Active: true}).ID
	if stock > 0 {
		_, err := e.eng.AdjustStock(context.Background(), transaction.AdjustStockInput{
			UserID: 1, StockItemID: id, Quantity: stock, Reason: "inicial",
		})
		require.NoError(t, err)
	}
	return id
}

func (e *env) sale(t *testing.T, folio string, at time.Time, itemID, qty int64) *entity.Sale {
	t.Helper()
	s, err := e.eng.CreateSale(context.Background(), transaction.CreateSaleInput{
		UserID: 1, Folio: folio, PaymentMethod: "Efectivo", IssuedAt: &at,
		Lines: []transaction.SaleLineInput{{StockItemID: itemID, Quantity: qty, UnitPrice: d("10")}},
	})
	require.NoError(t, err)
	return s
}

func TestGetSale(t *testing.T) {
	e := newEnv(t)
	id := e.item(t, "A", 10, 0)
	s := e.sale(t, "V1", time.Now(), id, 2)

	got, err := e.svc.GetSale(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "V1", got.Folio)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(2), got.Lines[0].Quantity)

	lines, err := e.svc.SaleLines(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	_, err = e.svc.GetSale(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.svc.GetSale(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListSales_RangoInclusivoYOrden(t *testing.T) {
	e := newEnv(t)
	id := e.item(t, "A", 10, 0)
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	e.sale(t, "V1", day, id, 1)
	e.sale(t, "V2", day.Add(12*time.Hour), id, 1)
	e.sale(t, "V3", day.Add(48*time.Hour), id, 1)

	got, err := e.svc.ListSales(context.Background(), day, day.Add(24*time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "V2", got[0].Folio)
	assert.Equal(t, "V1", got[1].Folio)

	got, err = e.svc.ListSales(context.Background(), day, day.Add(72*time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "V3", got[0].Folio)

	_, err = e.svc.ListSales(context.Background(), day.Add(time.Hour), day, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReturnsForSale(t *testing.T) {
	e := newEnv(t)
	id := e.item(t, "A", 10, 0)
	s := e.sale(t, "V1", time.Now(), id, 3)
	_, err := e.eng.CreateReturn(context.Background(), transaction.CreateReturnInput{
		UserID: 1, Folio: "D1", SaleID: s.ID, Reason: "cambio",
		Lines: []transaction.ReturnLineInput{{SaleLineID: s.Lines[0].ID, Quantity: 1}},
	})
	require.NoError(t, err)

	rets, err := e.svc.ReturnsForSale(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, rets, 1)

	ret, err := e.svc.GetReturn(context.Background(), rets[0].ID)
	require.NoError(t, err)
	assert.Len(t, ret.Lines, 1)
	assert.Equal(t, s.ID, ret.SaleID)
}

func TestMovementsForItem(t *testing.T) {
	e := newEnv(t)
	id := e.item(t, "A", 10, 0)
	e.sale(t, "V1", time.Now(), id, 4)

	movs, err := e.svc.MovementsForItem(context.Background(), id, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementKindOut, movs[0].Kind)

	_, err = e.svc.MovementsForItem(context.Background(), 4242, nil, nil, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock(t *testing.T) {
	e := newEnv(t)
	low := e.item(t, "BAJO", 2, 5)
	e.item(t, "OK", 20, 5)
	e.item(t, "SIN-MINIMO", 0, 0)

	items, err := e.svc.LowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low, items[0].ID)
}

func TestVerifyLedger(t *testing.T) {
	e := newEnv(t)
	id := e.item(t, "A", 10, 0)
	e.sale(t, "V1", time.Now(), id, 4)

	report, err := e.svc.VerifyLedger(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, report.Consistent, report.Problem)
	assert.Equal(t, int64(6), report.Stock)
	assert.Equal(t, int64(6), report.Replayed)
	assert.Equal(t, 2, report.Movements)

	// stock cargado sin movimientos: el kardex no lo respalda
	orphan := e.store.PutItem(entity.StockItem{Code: "HUERFANO", Stock: 5, Active: true}).ID
	report, err = e.svc.VerifyLedger(context.Background(), orphan)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.NotEmpty(t, report.Problem)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, 20, NormalizeLimit(20))
	assert.Equal(t, MaxLimit, NormalizeLimit(10000))
}
