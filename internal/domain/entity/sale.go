package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta.
type Sale struct {
	ID            int64
	Folio         string
	ClientID      *int64
	EmployeeID    *int64
	UserID        int64
	IssuedAt      time.Time
	PaymentMethod string
	Subtotal      decimal.Decimal // neto de descuentos por línea
	Taxes         decimal.Decimal
	Discount      decimal.Decimal // suma de descuentos por línea (informativo)
	Total         decimal.Decimal
	Status        string
	Notes         string
	CreatedAt     time.Time
	Lines         []*SaleLine
}

// SaleLine representa una línea de detalle de venta.
type SaleLine struct {
	ID          int64
	SaleID      int64
	StockItemID int64
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal // Quantity * UnitPrice - Discount
}
