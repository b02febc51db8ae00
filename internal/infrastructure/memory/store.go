// Package memory implementa los repositorios y el TxRunner en memoria.
// Una transacción toma el mutex del Store completo (equivale a bloquear todas las filas)
// y restaura una copia del estado si la función devuelve error.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/repository"
)

// Store guarda el estado completo de la tienda.
type Store struct {
	mu sync.Mutex
	st state

	// Fault, si no es nil, se consulta antes de cada escritura ("items.update_stock",
	// "movements.create", "sales.create", ...). Un error aborta la operación.
	Fault func(op string) error
}

type state struct {
	seq           int64
	items         map[int64]*entity.StockItem
	movements     []*entity.StockMovement
	sales         map[int64]*entity.Sale
	saleLines     []*entity.SaleLine
	purchases     map[int64]*entity.Purchase
	purchaseLines []*entity.PurchaseLine
	returns       map[int64]*entity.SaleReturn
	returnLines   []*entity.ReturnLine
	parties       map[string]map[int64]*entity.Party
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: state{
		items:     map[int64]*entity.StockItem{},
		sales:     map[int64]*entity.Sale{},
		purchases: map[int64]*entity.Purchase{},
		returns:   map[int64]*entity.SaleReturn{},
		parties:   map[string]map[int64]*entity.Party{},
	}}
}

// Run ejecuta fn con repositorios atados a la "transacción" y deshace todo si fn falla.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repos(false)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repositories devuelve repositorios fuera de transacción (cada llamada toma el mutex).
func (s *Store) Repositories() repository.Repositories {
	return s.repos(true)
}

func (s *Store) repos(autoLock bool) repository.Repositories {
	v := view{s: s, autoLock: autoLock}
	return repository.Repositories{
		Items:     itemRepo{v},
		Movements: movementRepo{v},
		Sales:     saleRepo{v},
		Purchases: purchaseRepo{v},
		Returns:   returnRepo{v},
		Parties:   partyRepo{v},
	}
}

// PutItem inserta o reemplaza un artículo (semilla de catálogo). Si ID es 0 se asigna uno.
func (s *Store) PutItem(item entity.StockItem) *entity.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.st.next()
	} else if item.ID > s.st.seq {
		s.st.seq = item.ID
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = item.CreatedAt
	cp := item
	s.st.items[item.ID] = &cp
	out := cp
	return &out
}

// PutParty registra un cliente, proveedor o empleado.
func (s *Store) PutParty(p entity.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.parties[p.Kind] == nil {
		s.st.parties[p.Kind] = map[int64]*entity.Party{}
	}
	cp := p
	s.st.parties[p.Kind][p.ID] = &cp
}

// SetSaleStatus cambia el estado de una venta (la cancelación no es parte del motor).
func (s *Store) SetSaleStatus(id int64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sale, ok := s.st.sales[id]; ok {
		sale.Status = status
	}
}

// Counts devuelve el número de documentos y movimientos guardados.
func (s *Store) Counts() (sales, purchases, returns, movements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.sales), len(s.st.purchases), len(s.st.returns), len(s.st.movements)
}

func (s *Store) fault(op string) error {
	if s.Fault == nil {
		return nil
	}
	return s.Fault(op)
}

func (st *state) next() int64 {
	st.seq++
	return st.seq
}

func (st state) clone() state {
	out := state{
		seq:       st.seq,
		items:     make(map[int64]*entity.StockItem, len(st.items)),
		sales:     make(map[int64]*entity.Sale, len(st.sales)),
		purchases: make(map[int64]*entity.Purchase, len(st.purchases)),
		returns:   make(map[int64]*entity.SaleReturn, len(st.returns)),
		parties:   make(map[string]map[int64]*entity.Party, len(st.parties)),
	}
	for id, it := range st.items {
		cp := *it
		out.items[id] = &cp
	}
	for id, sale := range st.sales {
		cp := *sale
		out.sales[id] = &cp
	}
	for id, p := range st.purchases {
		cp := *p
		out.purchases[id] = &cp
	}
	for id, r := range st.returns {
		cp := *r
		out.returns[id] = &cp
	}
	for kind, m := range st.parties {
		out.parties[kind] = make(map[int64]*entity.Party, len(m))
		for id, p := range m {
			cp := *p
			out.parties[kind][id] = &cp
		}
	}
	// las líneas y los movimientos no se modifican una vez insertados
	out.movements = append([]*entity.StockMovement(nil), st.movements...)
	out.saleLines = append([]*entity.SaleLine(nil), st.saleLines...)
	out.purchaseLines = append([]*entity.PurchaseLine(nil), st.purchaseLines...)
	out.returnLines = append([]*entity.ReturnLine(nil), st.returnLines...)
	return out
}

type view struct {
	s        *Store
	autoLock bool
}

func (v view) lock() func() {
	if !v.autoLock {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (v view) st() *state { return &v.s.st }

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func capLimit(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
