package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	Folio      string                `json:"folio"`
	SupplierID *int64                `json:"supplier_id,omitempty"`
	IssuedAt   *time.Time            `json:"issued_at,omitempty"`
	Notes      string                `json:"notes,omitempty"`
	Lines      []PurchaseLineRequest `json:"lines"`
}

// PurchaseLineRequest línea de compra; unit_price es el costo unitario.
type PurchaseLineRequest struct {
	StockItemID int64           `json:"stock_item_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type PurchaseResponse struct {
	ID         int64                  `json:"id"`
	Folio      string                 `json:"folio"`
	SupplierID *int64                 `json:"supplier_id,omitempty"`
	UserID     int64                  `json:"user_id"`
	IssuedAt   time.Time              `json:"issued_at"`
	Subtotal   decimal.Decimal        `json:"subtotal"`
	Taxes      decimal.Decimal        `json:"taxes"`
	Total      decimal.Decimal        `json:"total"`
	Status     string                 `json:"status"`
	Notes      string                 `json:"notes,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	Lines      []PurchaseLineResponse `json:"lines,omitempty"`
}

type PurchaseLineResponse struct {
	ID          int64           `json:"id"`
	PurchaseID  int64           `json:"purchase_id"`
	StockItemID int64           `json:"stock_item_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:         p.ID,
		Folio:      p.Folio,
		SupplierID: p.SupplierID,
		UserID:     p.UserID,
		IssuedAt:   p.IssuedAt,
		Subtotal:   p.Subtotal,
		Taxes:      p.Taxes,
		Total:      p.Total,
		Status:     p.Status,
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
		Lines:      NewPurchaseLineResponses(p.Lines),
	}
}

func NewPurchaseLineResponses(lines []*entity.PurchaseLine) []PurchaseLineResponse {
	out := make([]PurchaseLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, PurchaseLineResponse{
			ID:          l.ID,
			PurchaseID:  l.PurchaseID,
			StockItemID: l.StockItemID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}

func NewPurchaseResponses(purchases []*entity.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, NewPurchaseResponse(p))
	}
	return out
}
