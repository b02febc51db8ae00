package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleReturn representa una devolución sobre una venta existente.
type SaleReturn struct {
	ID        int64
	Folio     string
	SaleID    int64
	UserID    int64
	IssuedAt  time.Time
	Reason    string
	Subtotal  decimal.Decimal
	Taxes     decimal.Decimal
	Total     decimal.Decimal
	Status    string
	Notes     string
	CreatedAt time.Time
	Lines     []*ReturnLine
}

// ReturnLine reduce una línea de la venta original.
// UnitPrice se copia de la línea de venta al momento de la devolución.
type ReturnLine struct {
	ID          int64
	ReturnID    int64
	SaleLineID  int64
	StockItemID int64
	Quantity    int64
	UnitPrice   decimal.Decimal
	Reason      string
	Subtotal    decimal.Decimal
}
