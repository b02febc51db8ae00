package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLineSubtotal(t *testing.T) {
	l := Line{Quantity: 3, UnitPrice: d("150.00"), Discount: d("10.00")}
	assert.True(t, d("440.00").Equal(l.Subtotal()))
	assert.True(t, d("450").Equal(l.Gross()))
}

func TestFlatRate_SaleTotals(t *testing.T) {
	p, err := NewFlatRate(d("16"), d("0"))
	require.NoError(t, err)
	assert.True(t, d("0.16").Equal(p.SaleRate), "16 debe normalizarse a 0.16")

	got := p.SaleTotals([]Line{
		{Quantity: 2, UnitPrice: d("100.00"), Discount: d("20.00")},
		{Quantity: 1, UnitPrice: d("55.50")},
	})
	assert.True(t, d("235.50").Equal(got.Subtotal), got.Subtotal.String())
	assert.True(t, d("20.00").Equal(got.Discount))
	assert.True(t, d("37.68").Equal(got.Taxes), got.Taxes.String())
	assert.True(t, d("273.18").Equal(got.Total), got.Total.String())
}

func TestFlatRate_PurchaseUsesOwnRate(t *testing.T) {
	p, err := NewFlatRate(d("0.16"), d("0.08"))
	require.NoError(t, err)
	got := p.PurchaseTotals([]Line{{Quantity: 10, UnitPrice: d("12.50")}})
	assert.True(t, d("125.00").Equal(got.Subtotal))
	assert.True(t, d("10.00").Equal(got.Taxes))
	assert.True(t, d("135.00").Equal(got.Total))
}

func TestNewFlatRate_RechazaNegativos(t *testing.T) {
	_, err := NewFlatRate(d("-1"), d("0"))
	assert.Error(t, err)
}

func TestProratedTaxes(t *testing.T) {
	assert.True(t, d("8.00").Equal(ProratedTaxes(d("16.00"), d("100.00"), d("50.00"))))
	assert.True(t, decimal.Zero.Equal(ProratedTaxes(d("16.00"), decimal.Zero, d("50.00"))))
}

func TestReturnedSubtotal(t *testing.T) {
	// 3 × 150 con descuento 10: se cobró 440
	assert.True(t, d("440.00").Equal(ReturnedSubtotal(d("440.00"), 3, 3)))
	assert.True(t, d("146.67").Equal(ReturnedSubtotal(d("440.00"), 3, 1)), ReturnedSubtotal(d("440.00"), 3, 1).String())
	assert.True(t, d("250.00").Equal(ReturnedSubtotal(d("1000.00"), 4, 1)))
	assert.True(t, decimal.Zero.Equal(ReturnedSubtotal(d("440.00"), 0, 1)))
}

func TestWeightedCost(t *testing.T) {
	cases := []struct {
		name     string
		stock    int64
		cost     string
		qty      int64
		unitCost string
		want     string
	}{
		{"sin stock previo toma el costo de entrada", 0, "0", 10, "12.30", "12.30"},
		{"promedio simple", 10, "10.00", 10, "20.00", "15.00"},
		{"redondea a centavos", 3, "10.00", 1, "11.00", "10.25"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeightedCost(tc.stock, d(tc.cost), tc.qty, d(tc.unitCost))
			assert.True(t, d(tc.want).Equal(got), got.String())
		})
	}
}
