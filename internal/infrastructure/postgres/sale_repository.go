package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre sales y sale_lines.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `
	id, folio, client_id, employee_id, user_id, issued_at, payment_method,
	subtotal, taxes, discount, total, status, notes, created_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.Folio, &s.ClientID, &s.EmployeeID, &s.UserID, &s.IssuedAt, &s.PaymentMethod,
		&s.Subtotal, &s.Taxes, &s.Discount, &s.Total, &s.Status, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FolioExists indica si ya hay una venta con ese folio.
func (r *SaleRepo) FolioExists(ctx context.Context, folio string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sales WHERE folio = $1)`, folio).Scan(&exists); err != nil {
		return false, fmt.Errorf("sale folio exists: %w", err)
	}
	return exists, nil
}

// Create inserta la cabecera y asigna ID y CreatedAt.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (folio, client_id, employee_id, user_id, issued_at, payment_method,
			subtotal, taxes, discount, total, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		s.Folio, s.ClientID, s.EmployeeID, s.UserID, s.IssuedAt, s.PaymentMethod,
		s.Subtotal, s.Taxes, s.Discount, s.Total, s.Status, s.Notes,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return mapWriteError("create sale", err)
	}
	return nil
}

// CreateLine inserta una línea de venta.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (sale_id, stock_item_id, quantity, unit_price, discount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.SaleID, l.StockItemID, l.Quantity, l.UnitPrice, l.Discount, l.Subtotal,
	).Scan(&l.ID)
	if err != nil {
		return mapWriteError("create sale line", err)
	}
	return nil
}

// GetByID obtiene la cabecera (sin líneas).
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetLines líneas de la venta en orden de captura.
func (r *SaleRepo) GetLines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error) {
	return r.lines(ctx, "get sale lines", `
		SELECT id, sale_id, stock_item_id, quantity, unit_price, discount, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`, saleID)
}

// GetLinesForUpdate igual que GetLines pero bloquea las filas hasta el fin de la transacción.
func (r *SaleRepo) GetLinesForUpdate(ctx context.Context, saleID int64) ([]*entity.SaleLine, error) {
	return r.lines(ctx, "get sale lines for update", `
		SELECT id, sale_id, stock_item_id, quantity, unit_price, discount, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY id FOR UPDATE`, saleID)
}

func (r *SaleRepo) lines(ctx context.Context, op, query string, saleID int64) ([]*entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.StockItemID, &l.Quantity, &l.UnitPrice, &l.Discount, &l.Subtotal); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByDateRange ventas emitidas en [from, to], más recientes primero.
func (r *SaleRepo) ListByDateRange(ctx context.Context, from, to time.Time, limit int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales WHERE issued_at >= $1 AND issued_at <= $2
		ORDER BY issued_at DESC, id DESC LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
