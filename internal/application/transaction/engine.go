// Package transaction es el motor de documentos de inventario: ventas, compras, devoluciones
// y ajustes. Cada operación es una única transacción; el stock y el kardex se escriben juntos.
package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/pkg/logger"
)

// Engine ejecuta las operaciones que mueven existencias.
type Engine struct {
	tx      TxRunner
	pricing pricing.Policy
	log     *logger.Logger
	now     func() time.Time
	batchID func() string
}

// NewEngine construye el motor. log puede ser nil.
func NewEngine(tx TxRunner, policy pricing.Policy, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		tx:      tx,
		pricing: policy,
		log:     log.Component("transaction"),
		now:     time.Now,
		batchID: uuid.NewString,
	}
}

func (e *Engine) issuedAt(at *time.Time) time.Time {
	if at != nil && !at.IsZero() {
		return *at
	}
	return e.now()
}

// warnLowStock registra los artículos que quedaron en o bajo su stock mínimo (después del commit).
func (e *Engine) warnLowStock(items []*entity.StockItem) {
	for _, it := range items {
		if it.BelowMinimum() {
			e.log.Warn().
				Int64("stock_item_id", it.ID).
				Str("code", it.Code).
				Int64("stock", it.Stock).
				Int64("min_stock", it.MinStock).
				Msg("stock en o por debajo del mínimo")
		}
	}
}
