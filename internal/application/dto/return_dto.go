package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// CreateReturnRequest body para POST /api/returns.
type CreateReturnRequest struct {
	Folio    string              `json:"folio"`
	SaleID   int64               `json:"sale_id"`
	Reason   string              `json:"reason"`
	IssuedAt *time.Time          `json:"issued_at,omitempty"`
	Notes    string              `json:"notes,omitempty"`
	Lines    []ReturnLineRequest `json:"lines"`
}

// ReturnLineRequest línea devuelta; stock_item_id es opcional (se valida contra la línea de venta).
type ReturnLineRequest struct {
	SaleLineID  int64  `json:"sale_line_id"`
	StockItemID *int64 `json:"stock_item_id,omitempty"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason,omitempty"`
}

type ReturnResponse struct {
	ID        int64                `json:"id"`
	Folio     string               `json:"folio"`
	SaleID    int64                `json:"sale_id"`
	UserID    int64                `json:"user_id"`
	IssuedAt  time.Time            `json:"issued_at"`
	Reason    string               `json:"reason"`
	Subtotal  decimal.Decimal      `json:"subtotal"`
	Taxes     decimal.Decimal      `json:"taxes"`
	Total     decimal.Decimal      `json:"total"`
	Status    string               `json:"status"`
	Notes     string               `json:"notes,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	Lines     []ReturnLineResponse `json:"lines,omitempty"`
}

type ReturnLineResponse struct {
	ID          int64           `json:"id"`
	ReturnID    int64           `json:"return_id"`
	SaleLineID  int64           `json:"sale_line_id"`
	StockItemID int64           `json:"stock_item_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Reason      string          `json:"reason,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func NewReturnResponse(r *entity.SaleReturn) ReturnResponse {
	return ReturnResponse{
		ID:        r.ID,
		Folio:     r.Folio,
		SaleID:    r.SaleID,
		UserID:    r.UserID,
		IssuedAt:  r.IssuedAt,
		Reason:    r.Reason,
		Subtotal:  r.Subtotal,
		Taxes:     r.Taxes,
		Total:     r.Total,
		Status:    r.Status,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		Lines:     NewReturnLineResponses(r.Lines),
	}
}

func NewReturnLineResponses(lines []*entity.ReturnLine) []ReturnLineResponse {
	out := make([]ReturnLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, ReturnLineResponse{
			ID:          l.ID,
			ReturnID:    l.ReturnID,
			SaleLineID:  l.SaleLineID,
			StockItemID: l.StockItemID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Reason:      l.Reason,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}

func NewReturnResponses(rets []*entity.SaleReturn) []ReturnResponse {
	out := make([]ReturnResponse, 0, len(rets))
	for _, r := range rets {
		out = append(out, NewReturnResponse(r))
	}
	return out
}
