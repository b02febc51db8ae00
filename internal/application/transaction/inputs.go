package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleInput datos de una venta. ClientID y EmployeeID son opcionales.
type CreateSaleInput struct {
	UserID        int64
	Folio         string
	PaymentMethod string
	ClientID      *int64
	EmployeeID    *int64
	IssuedAt      *time.Time // nil = ahora
	Notes         string
	Lines         []SaleLineInput
}

// SaleLineInput línea de venta.
type SaleLineInput struct {
	StockItemID int64
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
}

// CreatePurchaseInput datos de una compra a proveedor.
type CreatePurchaseInput struct {
	UserID     int64
	Folio      string
	SupplierID *int64
	IssuedAt   *time.Time
	Notes      string
	Lines      []PurchaseLineInput
}

// PurchaseLineInput línea de compra; UnitPrice es el costo de entrada.
type PurchaseLineInput struct {
	StockItemID int64
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// CreateReturnInput datos de una devolución sobre una venta.
type CreateReturnInput struct {
	UserID   int64
	Folio    string
	SaleID   int64
	Reason   string
	IssuedAt *time.Time
	Notes    string
	Lines    []ReturnLineInput
}

// ReturnLineInput línea devuelta. StockItemID es opcional; si viene debe coincidir con la línea de venta.
type ReturnLineInput struct {
	SaleLineID  int64
	StockItemID *int64
	Quantity    int64
	Reason      string
}

// AdjustStockInput ajuste manual; Quantity con signo.
type AdjustStockInput struct {
	UserID      int64
	StockItemID int64
	Quantity    int64
	Reason      string
}

// ReconcileCountInput resultado de un conteo físico.
type ReconcileCountInput struct {
	UserID      int64
	StockItemID int64
	Counted     int64
	Reason      string
}
