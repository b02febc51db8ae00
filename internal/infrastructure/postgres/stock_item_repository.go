package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre product_details.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `
	id, COALESCE(product_id, 0), COALESCE(category_id, 0), COALESCE(brand_id, 0), COALESCE(model_id, 0),
	code, sku, purchase_price, sale_price, stock, min_stock, unit, last_movement_at, active,
	created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(
		&s.ID, &s.ProductID, &s.CategoryID, &s.BrandID, &s.ModelID,
		&s.Code, &s.SKU, &s.PurchasePrice, &s.SalePrice, &s.Stock, &s.MinStock, &s.Unit,
		&s.LastMovementAt, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StockItemRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.StockItem, error) {
	s, err := scanStockItem(r.q.QueryRow(ctx, `SELECT `+stockItemColumns+` FROM product_details WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// GetByID obtiene un artículo por id.
func (r *StockItemRepo) GetByID(ctx context.Context, id int64) (*entity.StockItem, error) {
	return r.getOne(ctx, "get stock item", "id = $1", id)
}

// GetByCode obtiene un artículo por su código único.
func (r *StockItemRepo) GetByCode(ctx context.Context, code string) (*entity.StockItem, error) {
	return r.getOne(ctx, "get stock item by code", "code = $1", code)
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockItem, error) {
	return r.getOne(ctx, "get stock item for update", "id = $1 FOR UPDATE", id)
}

// UpdateStock escribe la existencia cacheada. Sin fila afectada el artículo no existe.
func (r *StockItemRepo) UpdateStock(ctx context.Context, id int64, stock int64, movedAt time.Time) error {
	query := `
		UPDATE product_details SET stock = $2, last_movement_at = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, stock, movedAt)
	if err != nil {
		return mapWriteError("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: artículo %d no existe", id)
	}
	return nil
}

// UpdatePurchasePrice guarda el costo promedio ponderado.
func (r *StockItemRepo) UpdatePurchasePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	query := `UPDATE product_details SET purchase_price = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, price); err != nil {
		return mapWriteError("update purchase price", err)
	}
	return nil
}

// ListBelowMinimum artículos activos en o bajo su stock mínimo, mayor déficit primero.
func (r *StockItemRepo) ListBelowMinimum(ctx context.Context, limit int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM product_details
		WHERE active AND min_stock > 0 AND stock <= min_stock
		ORDER BY (min_stock - stock) DESC, id
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
