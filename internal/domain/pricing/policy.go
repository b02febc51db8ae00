package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces decimales de los importes (columnas NUMERIC(18,2)).
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Line es la vista de una línea que necesita el cálculo de totales.
type Line struct {
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// Subtotal = Quantity * UnitPrice - Discount, redondeado a centavos.
func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice).Sub(l.Discount).Round(MoneyPlaces)
}

// Gross = Quantity * UnitPrice (antes de descuento).
func (l Line) Gross() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
}

// Totals importes calculados de un documento.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}

// Policy reglas de impuestos de la tienda. Se inyecta en el motor como configuración.
type Policy interface {
	SaleTotals(lines []Line) Totals
	PurchaseTotals(lines []Line) Totals
}

// FlatRate aplica una tasa plana sobre el subtotal ya descontado.
type FlatRate struct {
	SaleRate     decimal.Decimal
	PurchaseRate decimal.Decimal
}

var _ Policy = FlatRate{}

// NewFlatRate normaliza las tasas (acepta 0.16 o 16) y rechaza valores negativos.
func NewFlatRate(saleRate, purchaseRate decimal.Decimal) (FlatRate, error) {
	if saleRate.IsNegative() || purchaseRate.IsNegative() {
		return FlatRate{}, fmt.Errorf("tasa de impuesto negativa")
	}
	return FlatRate{SaleRate: NormalizeRate(saleRate), PurchaseRate: NormalizeRate(purchaseRate)}, nil
}

// NormalizeRate convierte porcentajes (16) a fracción (0.16).
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(hundred)
	}
	return rate
}

func (p FlatRate) SaleTotals(lines []Line) Totals {
	return totals(lines, p.SaleRate)
}

func (p FlatRate) PurchaseTotals(lines []Line) Totals {
	return totals(lines, p.PurchaseRate)
}

func totals(lines []Line, rate decimal.Decimal) Totals {
	var t Totals
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Subtotal())
		t.Discount = t.Discount.Add(l.Discount)
	}
	t.Discount = t.Discount.Round(MoneyPlaces)
	t.Taxes = t.Subtotal.Mul(rate).Round(MoneyPlaces)
	t.Total = t.Subtotal.Add(t.Taxes)
	return t
}

// ProratedTaxes reparte los impuestos de un documento original en proporción al subtotal devuelto.
func ProratedTaxes(originalTaxes, originalSubtotal, subtotal decimal.Decimal) decimal.Decimal {
	if !originalSubtotal.IsPositive() {
		return decimal.Zero
	}
	return originalTaxes.Mul(subtotal).Div(originalSubtotal).Round(MoneyPlaces)
}

// ReturnedSubtotal parte del subtotal ya descontado de la línea vendida en proporción a las unidades devueltas.
// Devolver la línea completa reintegra exactamente lo cobrado.
func ReturnedSubtotal(soldSubtotal decimal.Decimal, soldQty, returnedQty int64) decimal.Decimal {
	if soldQty <= 0 || returnedQty <= 0 {
		return decimal.Zero
	}
	if returnedQty >= soldQty {
		return soldSubtotal.Round(MoneyPlaces)
	}
	return soldSubtotal.Mul(decimal.NewFromInt(returnedQty)).Div(decimal.NewFromInt(soldQty)).Round(MoneyPlaces)
}
