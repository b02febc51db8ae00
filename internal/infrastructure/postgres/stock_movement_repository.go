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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex sobre stock_movements. La tabla tiene un trigger que rechaza UPDATE y DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	id, stock_item_id, kind, quantity, stock_before, stock_after, reference_type, reference_id,
	batch_id::text, user_id, reason, created_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.StockItemID, &m.Kind, &m.Quantity, &m.StockBefore, &m.StockAfter,
		&m.ReferenceType, &m.ReferenceID, &m.BatchID, &m.UserID, &m.Reason, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta el asiento y asigna ID.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (stock_item_id, kind, quantity, stock_before, stock_after,
			reference_type, reference_id, batch_id, user_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::uuid, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.StockItemID, m.Kind, m.Quantity, m.StockBefore, m.StockAfter,
		m.ReferenceType, m.ReferenceID, m.BatchID, m.UserID, m.Reason, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return mapWriteError("create stock movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por id.
func (r *StockMovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByItem movimientos de un artículo, opcionalmente filtrados por rango de fechas.
func (r *StockMovementRepo) ListByItem(ctx context.Context, stockItemID int64, from, to *time.Time, limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE stock_item_id = $1`
	args := []any{stockItemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", pos)
	args = append(args, limitArg(limit))
	return r.list(ctx, "list stock movements", query, args...)
}

// ListAllByItem historial completo en orden de inserción (el id sigue al bloqueo de la fila del artículo).
func (r *StockMovementRepo) ListAllByItem(ctx context.Context, stockItemID int64) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE stock_item_id = $1 ORDER BY id`
	return r.list(ctx, "list all stock movements", query, stockItemID)
}

func (r *StockMovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
