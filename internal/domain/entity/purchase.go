package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa la cabecera de una compra a proveedor.
type Purchase struct {
	ID         int64
	Folio      string
	SupplierID *int64
	UserID     int64
	IssuedAt   time.Time
	Subtotal   decimal.Decimal
	Taxes      decimal.Decimal
	Total      decimal.Decimal
	Status     string
	Notes      string
	CreatedAt  time.Time
	Lines      []*PurchaseLine
}

// PurchaseLine línea de detalle de compra.
type PurchaseLine struct {
	ID          int64
	PurchaseID  int64
	StockItemID int64
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
