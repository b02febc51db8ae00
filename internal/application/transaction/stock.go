package transaction

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

// lockItems bloquea (SELECT FOR UPDATE) los artículos en orden ascendente de id para evitar deadlocks
// entre transacciones que tocan los mismos artículos.
func lockItems(ctx context.Context, items repository.StockItemRepository, ids []int64, requireActive bool) (map[int64]*entity.StockItem, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	locked := make(map[int64]*entity.StockItem, len(unique))
	for _, id := range unique {
		item, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("bloquear artículo %d: %w", id, err)
		}
		if item == nil {
			return nil, domain.NotFoundf("artículo %d", id)
		}
		if requireActive && !item.Active {
			return nil, domain.Validationf("artículo %d inactivo", id)
		}
		locked[id] = item
	}
	return locked, nil
}

// sortedItems devuelve los artículos bloqueados en orden de id (para logs y avisos).
func sortedItems(locked map[int64]*entity.StockItem) []*entity.StockItem {
	out := make([]*entity.StockItem, 0, len(locked))
	for _, it := range locked {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// movement describe un asiento a aplicar sobre un artículo ya bloqueado.
type movement struct {
	kind    string
	qty     int64
	refType string
	refID   *int64
	batchID string
	userID  int64
	reason  string
	at      time.Time
}

// apply actualiza el stock y agrega el asiento al kardex en la misma transacción.
// item se actualiza en memoria para que líneas posteriores del mismo documento vean el saldo nuevo.
func apply(ctx context.Context, repos repository.Repositories, item *entity.StockItem, m movement) (*entity.StockMovement, error) {
	mov := &entity.StockMovement{
		StockItemID:   item.ID,
		Kind:          m.kind,
		Quantity:      m.qty,
		StockBefore:   item.Stock,
		StockAfter:    item.Stock + m.qty,
		ReferenceType: m.refType,
		ReferenceID:   m.refID,
		BatchID:       m.batchID,
		UserID:        m.userID,
		Reason:        m.reason,
		CreatedAt:     m.at,
	}
	if err := mov.Validate(); err != nil {
		return nil, domain.Validationf("artículo %d: %v", item.ID, err)
	}
	if err := repos.Items.UpdateStock(ctx, item.ID, mov.StockAfter, m.at); err != nil {
		return nil, fmt.Errorf("actualizar stock %d: %w", item.ID, err)
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento %d: %w", item.ID, err)
	}
	at := m.at
	item.Stock = mov.StockAfter
	item.LastMovementAt = &at
	return mov, nil
}

func requireParty(ctx context.Context, parties repository.PartyRepository, kind string, id *int64) error {
	if id == nil {
		return nil
	}
	p, err := parties.Get(ctx, kind, *id)
	if err != nil {
		return fmt.Errorf("consultar %s %d: %w", kind, *id, err)
	}
	if p == nil {
		return domain.NotFoundf("%s %d", kind, *id)
	}
	return nil
}

func ref(id int64) *int64 { return &id }

// addCapped suma cantidades positivas saturando en math.MaxInt64.
func addCapped(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
