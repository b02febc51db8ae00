package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/stock/adjustments. quantity con signo.
type AdjustStockRequest struct {
	StockItemID int64  `json:"stock_item_id"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason"`
}

// StockCountRequest body para POST /api/stock/counts (conteo físico).
type StockCountRequest struct {
	StockItemID int64  `json:"stock_item_id"`
	Counted     int64  `json:"counted"`
	Reason      string `json:"reason"`
}

// StockMovementResponse asiento del kardex.
type StockMovementResponse struct {
	ID            int64     `json:"id"`
	StockItemID   int64     `json:"stock_item_id"`
	Kind          string    `json:"kind"`
	Quantity      int64     `json:"quantity"`
	StockBefore   int64     `json:"stock_before"`
	StockAfter    int64     `json:"stock_after"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   *int64    `json:"reference_id,omitempty"`
	BatchID       string    `json:"batch_id"`
	UserID        int64     `json:"user_id"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		StockItemID:   m.StockItemID,
		Kind:          m.Kind,
		Quantity:      m.Quantity,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		BatchID:       m.BatchID,
		UserID:        m.UserID,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

func NewStockMovementResponses(movs []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, NewStockMovementResponse(m))
	}
	return out
}

// StockCountResponse resultado del conteo; movement es null si no hubo diferencia.
type StockCountResponse struct {
	StockItemID int64                  `json:"stock_item_id"`
	Counted     int64                  `json:"counted"`
	Adjusted    bool                   `json:"adjusted"`
	Movement    *StockMovementResponse `json:"movement"`
}

// LowStockItemDTO artículo en o bajo su stock mínimo.
type LowStockItemDTO struct {
	StockItemID   int64           `json:"stock_item_id"`
	Code          string          `json:"code"`
	SKU           string          `json:"sku"`
	Stock         int64           `json:"stock"`
	MinStock      int64           `json:"min_stock"`
	Shortfall     int64           `json:"shortfall"` // MinStock - Stock
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

func NewLowStockItems(items []*entity.StockItem) []LowStockItemDTO {
	out := make([]LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, LowStockItemDTO{
			StockItemID:   it.ID,
			Code:          it.Code,
			SKU:           it.SKU,
			Stock:         it.Stock,
			MinStock:      it.MinStock,
			Shortfall:     it.MinStock - it.Stock,
			PurchasePrice: it.PurchasePrice,
		})
	}
	return out
}

// LedgerCheckResponse resultado de GET /api/stock/items/:id/ledger-check.
type LedgerCheckResponse struct {
	StockItemID int64  `json:"stock_item_id"`
	Stock       int64  `json:"stock"`
	Replayed    int64  `json:"replayed"`
	Movements   int    `json:"movements"`
	Consistent  bool   `json:"consistent"`
	Problem     string `json:"problem,omitempty"`
}
