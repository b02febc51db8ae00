package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Licoreria-api/internal/application/query"
	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Licoreria-api/pkg/config"
)

const cajero int64 = 1

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("licoreria_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("no se pudo iniciar PostgreSQL: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	mg, err := postgres.NewMigrator(pool)
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	v, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	_, err = pool.Exec(ctx, `INSERT INTO users (id, username, role) VALUES ($1, 'caja1', 'vendedor')`, cajero)
	require.NoError(t, err)
	return pool
}

func seedItem(t *testing.T, pool *pgxpool.Pool, code string, minStock int64, cost string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO product_details (code, sku, purchase_price, sale_price, min_stock)
		VALUES ($1, $1, $2, 100, $3) RETURNING id`,
		code, decimal.RequireFromString(cost), minStock).Scan(&id)
	require.NoError(t, err)
	return id
}

func newEngine(t *testing.T, pool *pgxpool.Pool) *transaction.Engine {
	t.Helper()
	policy, err := pricing.NewFlatRate(decimal.NewFromInt(16), decimal.NewFromInt(16))
	require.NoError(t, err)
	return transaction.NewEngine(postgres.NewTxRunner(pool, 5000), policy, nil)
}

func TestPostgres_FlujoCompletoYKardex(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	eng := newEngine(t, pool)
	svc := query.NewService(postgres.Repositories(pool))
	item := seedItem(t, pool, "TEQ-750", 3, "10.00")

	p, err := eng.CreatePurchase(ctx, transaction.CreatePurchaseInput{
		UserID: cajero, Folio: "C-1",
		Lines: []transaction.PurchaseLineInput{{StockItemID: item, Quantity: 10, UnitPrice: decimal.RequireFromString("20.00")}},
	})
	require.NoError(t, err)
	assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(200)))

	s, err := eng.CreateSale(ctx, transaction.CreateSaleInput{
		UserID: cajero, Folio: "V-1", PaymentMethod: "Efectivo",
		Lines: []transaction.SaleLineInput{{StockItemID: item, Quantity: 4, UnitPrice: decimal.RequireFromString("100.00")}},
	})
	require.NoError(t, err)
	require.Len(t, s.Lines, 1)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("464.00")))

	_, err = eng.CreateReturn(ctx, transaction.CreateReturnInput{
		UserID: cajero, Folio: "D-1", SaleID: s.ID, Reason: "botella dañada",
		Lines: []transaction.ReturnLineInput{{SaleLineID: s.Lines[0].ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = eng.CreateReturn(ctx, transaction.CreateReturnInput{
		UserID: cajero, Folio: "D-2", SaleID: s.ID, Reason: "otra",
		Lines: []transaction.ReturnLineInput{{SaleLineID: s.Lines[0].ID, Quantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	it, err := postgres.Repositories(pool).Items.GetByID(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, int64(7), it.Stock)
	assert.True(t, it.PurchasePrice.Equal(decimal.RequireFromString("20.00")))
	assert.NotNil(t, it.LastMovementAt)

	report, err := svc.VerifyLedger(ctx, item)
	require.NoError(t, err)
	assert.True(t, report.Consistent, report.Problem)
	assert.Equal(t, 3, report.Movements)

	movs, err := svc.MovementsForItem(ctx, item, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, int64(1), movs[0].Quantity)
	assert.Len(t, movs[0].BatchID, 36)

	sales, err := svc.ListSales(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestPostgres_VentaSinStockNoDejaRastro(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	eng := newEngine(t, pool)
	a := seedItem(t, pool, "A", 0, "1")
	b := seedItem(t, pool, "B", 0, "1")
	_, err := eng.AdjustStock(ctx, transaction.AdjustStockInput{UserID: cajero, StockItemID: a, Quantity: 5, Reason: "inicial"})
	require.NoError(t, err)

	_, err = eng.CreateSale(ctx, transaction.CreateSaleInput{
		UserID: cajero, Folio: "V-X", PaymentMethod: "Efectivo",
		Lines: []transaction.SaleLineInput{
			{StockItemID: a, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{StockItemID: b, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, b, insufficient.StockItemID)

	var sales, movements int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM sales`).Scan(&sales))
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM stock_movements`).Scan(&movements))
	assert.Zero(t, sales)
	assert.Equal(t, 1, movements)

	// folio duplicado
	_, err = eng.CreateSale(ctx, transaction.CreateSaleInput{
		UserID: cajero, Folio: "V-1", PaymentMethod: "Efectivo",
		Lines: []transaction.SaleLineInput{{StockItemID: a, Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	_, err = eng.CreateSale(ctx, transaction.CreateSaleInput{
		UserID: cajero, Folio: "V-1", PaymentMethod: "Efectivo",
		Lines: []transaction.SaleLineInput{{StockItemID: a, Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPostgres_VentasConcurrentesNoSobrevenden(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	eng := newEngine(t, pool)
	item := seedItem(t, pool, "RON", 0, "1")
	_, err := eng.AdjustStock(ctx, transaction.AdjustStockInput{UserID: cajero, StockItemID: item, Quantity: 5, Reason: "inicial"})
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		fail int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := eng.CreateSale(ctx, transaction.CreateSaleInput{
				UserID: cajero, Folio: "V-" + string(rune('A'+i)), PaymentMethod: "Efectivo",
				Lines: []transaction.SaleLineInput{{StockItemID: item, Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				fail++
			} else {
				t.Errorf("error inesperado: %v", err)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, ok)
	assert.Equal(t, 3, fail)

	report, err := query.NewService(postgres.Repositories(pool)).VerifyLedger(ctx, item)
	require.NoError(t, err)
	assert.True(t, report.Consistent, report.Problem)
	assert.Zero(t, report.Stock)
}

func TestPostgres_KardexAppendOnly(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	eng := newEngine(t, pool)
	item := seedItem(t, pool, "VINO", 0, "1")
	m, err := eng.AdjustStock(ctx, transaction.AdjustStockInput{UserID: cajero, StockItemID: item, Quantity: 2, Reason: "inicial"})
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `UPDATE stock_movements SET quantity = 99 WHERE id = $1`, m.ID)
	assert.Error(t, err)
	_, err = pool.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, m.ID)
	assert.Error(t, err)

	// la BD también rechaza stock negativo aunque alguien salte el motor
	_, err = pool.Exec(ctx, `UPDATE product_details SET stock = -1 WHERE id = $1`, item)
	assert.Error(t, err)
}

func TestPostgres_ParteInexistente(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	eng := newEngine(t, pool)
	item := seedItem(t, pool, "GIN", 0, "1")
	_, err := eng.AdjustStock(ctx, transaction.AdjustStockInput{UserID: cajero, StockItemID: item, Quantity: 2, Reason: "inicial"})
	require.NoError(t, err)

	client := int64(77)
	_, err = eng.CreateSale(ctx, transaction.CreateSaleInput{
		UserID: cajero, Folio: "V-9", PaymentMethod: "Tarjeta", ClientID: &client,
		Lines: []transaction.SaleLineInput{{StockItemID: item, Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// usuario del token sin fila en users: la FK lo rechaza
	_, err = eng.AdjustStock(ctx, transaction.AdjustStockInput{UserID: 999, StockItemID: item, Quantity: 1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Ventas con los mismos artículos en orden inverso no deben bloquearse mutuamente.
func TestPostgres_VentasCruzadasSinDeadlock(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	eng := newEngine(t, pool)
	a := seedItem(t, pool, "CRUZ-A", 0, "1")
	b := seedItem(t, pool, "CRUZ-B", 0, "1")
	for _, id := range []int64{a, b} {
		_, err := eng.AdjustStock(ctx, transaction.AdjustStockInput{UserID: cajero, StockItemID: id, Quantity: 100, Reason: "inicial"})
		require.NoError(t, err)
	}

	const rounds = 20
	errs := make(chan error, 2*rounds)
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		for j, order := range [][]int64{{a, b}, {b, a}} {
			wg.Add(1)
			go func(folio string, order []int64) {
				defer wg.Done()
				_, err := eng.CreateSale(ctx, transaction.CreateSaleInput{
					UserID: cajero, Folio: folio, PaymentMethod: "Efectivo",
					Lines: []transaction.SaleLineInput{
						{StockItemID: order[0], Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
						{StockItemID: order[1], Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
					},
				})
				errs <- err
			}(fmt.Sprintf("X-%d-%d", i, j), order)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			assert.NotEqual(t, "40P01", pgErr.Code, "deadlock: %v", err)
		}
		assert.NoError(t, err)
	}

	svc := query.NewService(postgres.Repositories(pool))
	for _, id := range []int64{a, b} {
		report, err := svc.VerifyLedger(ctx, id)
		require.NoError(t, err)
		assert.True(t, report.Consistent, report.Problem)
		assert.Equal(t, int64(100-2*rounds), report.Stock)
	}
}
