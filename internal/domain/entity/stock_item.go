package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un detalle de producto vendible/comprable (tabla product_details).
// Stock es la caché materializada del kardex; solo el motor de transacciones la modifica.
type StockItem struct {
	ID             int64
	ProductID      int64
	CategoryID     int64
	BrandID        int64
	ModelID        int64
	Code           string // código único
	SKU            string
	PurchasePrice  decimal.Decimal // costo promedio ponderado
	SalePrice      decimal.Decimal
	Stock          int64 // existencia actual, >= 0
	MinStock       int64 // punto de reorden (stock mínimo)
	Unit           string
	LastMovementAt *time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowMinimum indica si la existencia quedó en o por debajo del stock mínimo.
func (s *StockItem) BelowMinimum() bool {
	return s.MinStock > 0 && s.Stock <= s.MinStock
}
