// Package query expone las consultas de solo lectura sobre documentos y kardex.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/ledger"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

// Límites de los listados.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Service consultas sobre repositorios fuera de transacción.
type Service struct {
	repos repository.Repositories
}

// NewService construye el servicio de consultas.
func NewService(repos repository.Repositories) *Service {
	return &Service{repos: repos}
}

// LedgerReport resultado de reconstruir el stock de un artículo desde su kardex.
type LedgerReport struct {
	StockItemID int64
	Stock       int64 // existencia materializada
	Replayed    int64 // existencia reconstruida
	Movements   int
	Consistent  bool
	Problem     string
}

// NormalizeLimit aplica el límite por defecto y el máximo.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func checkID(kind string, id int64) error {
	if id <= 0 {
		return domain.Validationf("id de %s inválido", kind)
	}
	return nil
}

func checkRange(from, to time.Time) error {
	if from.After(to) {
		return domain.Validationf("rango de fechas invertido")
	}
	return nil
}

// GetSale devuelve la venta con sus líneas.
func (s *Service) GetSale(ctx context.Context, id int64) (*entity.Sale, error) {
	sale, err := s.sale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Lines, err = s.repos.Sales.GetLines(ctx, id); err != nil {
		return nil, fmt.Errorf("leer líneas de venta %d: %w", id, err)
	}
	return sale, nil
}

// SaleLines devuelve solo las líneas de la venta.
func (s *Service) SaleLines(ctx context.Context, id int64) ([]*entity.SaleLine, error) {
	if _, err := s.sale(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Sales.GetLines(ctx, id)
}

// ListSales ventas emitidas en [from, to], más recientes primero.
func (s *Service) ListSales(ctx context.Context, from, to time.Time, limit int) ([]*entity.Sale, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	return s.repos.Sales.ListByDateRange(ctx, from, to, NormalizeLimit(limit))
}

func (s *Service) sale(ctx context.Context, id int64) (*entity.Sale, error) {
	if err := checkID("venta", id); err != nil {
		return nil, err
	}
	sale, err := s.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer venta %d: %w", id, err)
	}
	if sale == nil {
		return nil, domain.NotFoundf("venta %d", id)
	}
	return sale, nil
}

// GetPurchase devuelve la compra con sus líneas.
func (s *Service) GetPurchase(ctx context.Context, id int64) (*entity.Purchase, error) {
	p, err := s.purchase(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Lines, err = s.repos.Purchases.GetLines(ctx, id); err != nil {
		return nil, fmt.Errorf("leer líneas de compra %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) PurchaseLines(ctx context.Context, id int64) ([]*entity.PurchaseLine, error) {
	if _, err := s.purchase(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Purchases.GetLines(ctx, id)
}

func (s *Service) ListPurchases(ctx context.Context, from, to time.Time, limit int) ([]*entity.Purchase, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	return s.repos.Purchases.ListByDateRange(ctx, from, to, NormalizeLimit(limit))
}

func (s *Service) purchase(ctx context.Context, id int64) (*entity.Purchase, error) {
	if err := checkID("compra", id); err != nil {
		return nil, err
	}
	p, err := s.repos.Purchases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer compra %d: %w", id, err)
	}
	if p == nil {
		return nil, domain.NotFoundf("compra %d", id)
	}
	return p, nil
}

// GetReturn devuelve la devolución con sus líneas.
func (s *Service) GetReturn(ctx context.Context, id int64) (*entity.SaleReturn, error) {
	ret, err := s.saleReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret.Lines, err = s.repos.Returns.GetLines(ctx, id); err != nil {
		return nil, fmt.Errorf("leer líneas de devolución %d: %w", id, err)
	}
	return ret, nil
}

func (s *Service) ReturnLines(ctx context.Context, id int64) ([]*entity.ReturnLine, error) {
	if _, err := s.saleReturn(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Returns.GetLines(ctx, id)
}

func (s *Service) ListReturns(ctx context.Context, from, to time.Time, limit int) ([]*entity.SaleReturn, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	return s.repos.Returns.ListByDateRange(ctx, from, to, NormalizeLimit(limit))
}

// ReturnsForSale devoluciones registradas contra una venta.
func (s *Service) ReturnsForSale(ctx context.Context, saleID int64) ([]*entity.SaleReturn, error) {
	if _, err := s.sale(ctx, saleID); err != nil {
		return nil, err
	}
	return s.repos.Returns.ListBySale(ctx, saleID)
}

func (s *Service) saleReturn(ctx context.Context, id int64) (*entity.SaleReturn, error) {
	if err := checkID("devolución", id); err != nil {
		return nil, err
	}
	ret, err := s.repos.Returns.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer devolución %d: %w", id, err)
	}
	if ret == nil {
		return nil, domain.NotFoundf("devolución %d", id)
	}
	return ret, nil
}

// MovementsForItem kardex de un artículo, más recientes primero. from/to son opcionales.
func (s *Service) MovementsForItem(ctx context.Context, itemID int64, from, to *time.Time, limit int) ([]*entity.StockMovement, error) {
	if from != nil && to != nil {
		if err := checkRange(*from, *to); err != nil {
			return nil, err
		}
	}
	if _, err := s.item(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repos.Movements.ListByItem(ctx, itemID, from, to, NormalizeLimit(limit))
}

// LowStock artículos activos en o por debajo de su stock mínimo.
func (s *Service) LowStock(ctx context.Context, limit int) ([]*entity.StockItem, error) {
	return s.repos.Items.ListBelowMinimum(ctx, NormalizeLimit(limit))
}

// VerifyLedger reconstruye el stock desde el kardex y lo compara con la existencia guardada.
func (s *Service) VerifyLedger(ctx context.Context, itemID int64) (*LedgerReport, error) {
	item, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	movs, err := s.repos.Movements.ListAllByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("leer kardex %d: %w", itemID, err)
	}
	report := &LedgerReport{StockItemID: itemID, Stock: item.Stock, Movements: len(movs)}
	replayed, err := ledger.Replay(0, movs)
	report.Replayed = replayed
	switch {
	case err != nil:
		report.Problem = err.Error()
	case replayed != item.Stock:
		report.Problem = fmt.Sprintf("stock %d, kardex %d", item.Stock, replayed)
	default:
		report.Consistent = true
	}
	return report, nil
}

func (s *Service) item(ctx context.Context, id int64) (*entity.StockItem, error) {
	if err := checkID("artículo", id); err != nil {
		return nil, err
	}
	item, err := s.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer artículo %d: %w", id, err)
	}
	if item == nil {
		return nil, domain.NotFoundf("artículo %d", id)
	}
	return item, nil
}
