package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Folio         string            `json:"folio"`
	PaymentMethod string            `json:"payment_method"`
	ClientID      *int64            `json:"client_id,omitempty"`
	EmployeeID    *int64            `json:"employee_id,omitempty"`
	IssuedAt      *time.Time        `json:"issued_at,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Lines         []SaleLineRequest `json:"lines"`
}

// SaleLineRequest línea de venta.
type SaleLineRequest struct {
	StockItemID int64           `json:"stock_item_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            int64              `json:"id"`
	Folio         string             `json:"folio"`
	ClientID      *int64             `json:"client_id,omitempty"`
	EmployeeID    *int64             `json:"employee_id,omitempty"`
	UserID        int64              `json:"user_id"`
	IssuedAt      time.Time          `json:"issued_at"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Taxes         decimal.Decimal    `json:"taxes"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}

// SaleLineResponse línea de venta.
type SaleLineResponse struct {
	ID          int64           `json:"id"`
	SaleID      int64           `json:"sale_id"`
	StockItemID int64           `json:"stock_item_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// NewSaleResponse mapea la entidad a la respuesta.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		Folio:         s.Folio,
		ClientID:      s.ClientID,
		EmployeeID:    s.EmployeeID,
		UserID:        s.UserID,
		IssuedAt:      s.IssuedAt,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Taxes:         s.Taxes,
		Total:         s.Total,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		Lines:         NewSaleLineResponses(s.Lines),
	}
}

// NewSaleLineResponses mapea las líneas.
func NewSaleLineResponses(lines []*entity.SaleLine) []SaleLineResponse {
	out := make([]SaleLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, SaleLineResponse{
			ID:          l.ID,
			SaleID:      l.SaleID,
			StockItemID: l.StockItemID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}

// NewSaleResponses mapea un listado (sin líneas).
func NewSaleResponses(sales []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, NewSaleResponse(s))
	}
	return out
}
