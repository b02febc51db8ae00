package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

var _ transaction.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool             *pgxpool.Pool
	statementTimeout int // ms; 0 = sin límite
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, statementTimeoutMS int) *TxRunner {
	return &TxRunner{pool: pool, statementTimeout: statementTimeoutMS}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La serialización por artículo la dan los SELECT ... FOR UPDATE del motor.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.statementTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", r.statementTimeout)); err != nil {
			return fmt.Errorf("statement_timeout: %w", err)
		}
	}

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories arma el juego de repositorios sobre q (pool para lecturas, tx dentro de Run).
func Repositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Items:     NewStockItemRepository(q),
		Movements: NewStockMovementRepository(q),
		Sales:     NewSaleRepository(q),
		Purchases: NewPurchaseRepository(q),
		Returns:   NewReturnRepository(q),
		Parties:   NewPartyRepository(q),
	}
}
