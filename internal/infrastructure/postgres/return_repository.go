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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre sale_returns y sale_return_lines.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `
	id, folio, sale_id, user_id, issued_at, reason, subtotal, taxes, total, status, notes, created_at`

func scanReturn(row pgx.Row) (*entity.SaleReturn, error) {
	var ret entity.SaleReturn
	err := row.Scan(
		&ret.ID, &ret.Folio, &ret.SaleID, &ret.UserID, &ret.IssuedAt, &ret.Reason,
		&ret.Subtotal, &ret.Taxes, &ret.Total, &ret.Status, &ret.Notes, &ret.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *ReturnRepo) FolioExists(ctx context.Context, folio string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sale_returns WHERE folio = $1)`, folio).Scan(&exists); err != nil {
		return false, fmt.Errorf("return folio exists: %w", err)
	}
	return exists, nil
}

func (r *ReturnRepo) Create(ctx context.Context, ret *entity.SaleReturn) error {
	query := `
		INSERT INTO sale_returns (folio, sale_id, user_id, issued_at, reason, subtotal, taxes, total, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		ret.Folio, ret.SaleID, ret.UserID, ret.IssuedAt, ret.Reason,
		ret.Subtotal, ret.Taxes, ret.Total, ret.Status, ret.Notes,
	).Scan(&ret.ID, &ret.CreatedAt)
	if err != nil {
		return mapWriteError("create return", err)
	}
	return nil
}

func (r *ReturnRepo) CreateLine(ctx context.Context, l *entity.ReturnLine) error {
	query := `
		INSERT INTO sale_return_lines (return_id, sale_line_id, stock_item_id, quantity, unit_price, reason, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.ReturnID, l.SaleLineID, l.StockItemID, l.Quantity, l.UnitPrice, l.Reason, l.Subtotal,
	).Scan(&l.ID)
	if err != nil {
		return mapWriteError("create return line", err)
	}
	return nil
}

func (r *ReturnRepo) GetByID(ctx context.Context, id int64) (*entity.SaleReturn, error) {
	ret, err := scanReturn(r.q.QueryRow(ctx, `SELECT `+returnColumns+` FROM sale_returns WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return ret, nil
}

func (r *ReturnRepo) GetLines(ctx context.Context, returnID int64) ([]*entity.ReturnLine, error) {
	query := `
		SELECT id, return_id, sale_line_id, stock_item_id, quantity, unit_price, reason, subtotal
		FROM sale_return_lines WHERE return_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("get return lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReturnLine
	for rows.Next() {
		var l entity.ReturnLine
		if err := rows.Scan(&l.ID, &l.ReturnID, &l.SaleLineID, &l.StockItemID, &l.Quantity, &l.UnitPrice, &l.Reason, &l.Subtotal); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListBySale devoluciones de una venta en orden de registro.
func (r *ReturnRepo) ListBySale(ctx context.Context, saleID int64) ([]*entity.SaleReturn, error) {
	return r.list(ctx, "list returns by sale",
		`SELECT `+returnColumns+` FROM sale_returns WHERE sale_id = $1 ORDER BY id`, saleID)
}

// ListByDateRange devoluciones emitidas en [from, to], más recientes primero.
func (r *ReturnRepo) ListByDateRange(ctx context.Context, from, to time.Time, limit int) ([]*entity.SaleReturn, error) {
	return r.list(ctx, "list returns", `SELECT `+returnColumns+`
		FROM sale_returns WHERE issued_at >= $1 AND issued_at <= $2
		ORDER BY issued_at DESC, id DESC LIMIT $3`, from, to, limitArg(limit))
}

func (r *ReturnRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.SaleReturn, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.SaleReturn
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ret)
	}
	return list, rows.Err()
}

// ReturnedBySaleLine suma lo devuelto por línea, sin contar devoluciones canceladas.
func (r *ReturnRepo) ReturnedBySaleLine(ctx context.Context, saleID int64) (map[int64]int64, error) {
	query := `
		SELECT l.sale_line_id, SUM(l.quantity)::bigint
		FROM sale_return_lines l
		JOIN sale_returns d ON d.id = l.return_id
		WHERE d.sale_id = $1 AND d.status <> $2
		GROUP BY l.sale_line_id`
	rows, err := r.q.Query(ctx, query, saleID, entity.DocumentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("returned by sale line: %w", err)
	}
	defer rows.Close()
	out := map[int64]int64{}
	for rows.Next() {
		var lineID, qty int64
		if err := rows.Scan(&lineID, &qty); err != nil {
			return nil, err
		}
		out[lineID] = qty
	}
	return out, rows.Err()
}
