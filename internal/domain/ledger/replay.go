// Package ledger reconstruye la existencia de un artículo a partir de su kardex.
package ledger

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// Sort ordena los movimientos cronológicamente (fecha, luego id).
func Sort(movements []*entity.StockMovement) {
	sort.SliceStable(movements, func(i, j int) bool {
		a, b := movements[i], movements[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Replay aplica los movimientos sobre opening y devuelve la existencia resultante.
// Falla si algún asiento es inconsistente o si StockBefore no coincide con el saldo acumulado.
func Replay(opening int64, movements []*entity.StockMovement) (int64, error) {
	ordered := make([]*entity.StockMovement, len(movements))
	copy(ordered, movements)
	Sort(ordered)

	balance := opening
	for _, m := range ordered {
		if err := m.Validate(); err != nil {
			return balance, err
		}
		if m.StockBefore != balance {
			return balance, fmt.Errorf("movimiento %d: stock anterior %d, saldo acumulado %d", m.ID, m.StockBefore, balance)
		}
		balance = m.StockAfter
	}
	return balance, nil
}

// Sum suma las cantidades con signo, sin validar continuidad.
func Sum(movements []*entity.StockMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.Quantity
	}
	return total
}
