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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre purchases y purchase_lines.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `
	id, folio, supplier_id, user_id, issued_at, subtotal, taxes, total, status, notes, created_at`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.Folio, &p.SupplierID, &p.UserID, &p.IssuedAt,
		&p.Subtotal, &p.Taxes, &p.Total, &p.Status, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) FolioExists(ctx context.Context, folio string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM purchases WHERE folio = $1)`, folio).Scan(&exists); err != nil {
		return false, fmt.Errorf("purchase folio exists: %w", err)
	}
	return exists, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (folio, supplier_id, user_id, issued_at, subtotal, taxes, total, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		p.Folio, p.SupplierID, p.UserID, p.IssuedAt, p.Subtotal, p.Taxes, p.Total, p.Status, p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return mapWriteError("create purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) CreateLine(ctx context.Context, l *entity.PurchaseLine) error {
	query := `
		INSERT INTO purchase_lines (purchase_id, stock_item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, l.PurchaseID, l.StockItemID, l.Quantity, l.UnitPrice, l.Subtotal).Scan(&l.ID); err != nil {
		return mapWriteError("create purchase line", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) GetLines(ctx context.Context, purchaseID int64) ([]*entity.PurchaseLine, error) {
	query := `
		SELECT id, purchase_id, stock_item_id, quantity, unit_price, subtotal
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.StockItemID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByDateRange compras emitidas en [from, to], más recientes primero.
func (r *PurchaseRepo) ListByDateRange(ctx context.Context, from, to time.Time, limit int) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + `
		FROM purchases WHERE issued_at >= $1 AND issued_at <= $2
		ORDER BY issued_at DESC, id DESC LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
