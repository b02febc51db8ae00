package http

import (
	"context"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/application/query"
	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// TransactionService operaciones de escritura (lo implementa *transaction.Engine).
type TransactionService interface {
	CreateSale(ctx context.Context, in transaction.CreateSaleInput) (*entity.Sale, error)
	CreatePurchase(ctx context.Context, in transaction.CreatePurchaseInput) (*entity.Purchase, error)
	CreateReturn(ctx context.Context, in transaction.CreateReturnInput) (*entity.SaleReturn, error)
	AdjustStock(ctx context.Context, in transaction.AdjustStockInput) (*entity.StockMovement, error)
	ReconcileCount(ctx context.Context, in transaction.ReconcileCountInput) (*entity.StockMovement, error)
}

// QueryService consultas (lo implementa *query.Service).
type QueryService interface {
	GetSale(ctx context.Context, id int64) (*entity.Sale, error)
	SaleLines(ctx context.Context, id int64) ([]*entity.SaleLine, error)
	ListSales(ctx context.Context, from, to time.Time, limit int) ([]*entity.Sale, error)
	GetPurchase(ctx context.Context, id int64) (*entity.Purchase, error)
	PurchaseLines(ctx context.Context, id int64) ([]*entity.PurchaseLine, error)
	ListPurchases(ctx context.Context, from, to time.Time, limit int) ([]*entity.Purchase, error)
	GetReturn(ctx context.Context, id int64) (*entity.SaleReturn, error)
	ReturnLines(ctx context.Context, id int64) ([]*entity.ReturnLine, error)
	ListReturns(ctx context.Context, from, to time.Time, limit int) ([]*entity.SaleReturn, error)
	ReturnsForSale(ctx context.Context, saleID int64) ([]*entity.SaleReturn, error)
	MovementsForItem(ctx context.Context, itemID int64, from, to *time.Time, limit int) ([]*entity.StockMovement, error)
	LowStock(ctx context.Context, limit int) ([]*entity.StockItem, error)
	VerifyLedger(ctx context.Context, itemID int64) (*query.LedgerReport, error)
}

var (
	_ TransactionService = (*transaction.Engine)(nil)
	_ QueryService       = (*query.Service)(nil)
)
