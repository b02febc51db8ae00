package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licoreria-api/internal/application/dto"
	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
)

// StockHandler ajustes, conteos y consultas del kardex (protegido).
type StockHandler struct {
	tx      TransactionService
	queries QueryService
}

func NewStockHandler(tx TransactionService, queries QueryService) *StockHandler {
	return &StockHandler{tx: tx, queries: queries}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "stock_item_id, quantity (con signo), reason"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	mov, err := h.tx.AdjustStock(c.Context(), transaction.AdjustInputFromRequest(userID, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockMovementResponse(mov))
}

// Count godoc
// @Summary      Conciliar conteo físico
// @Description  Lleva el stock al valor contado. Sin diferencia no registra movimiento.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockCountRequest  true  "stock_item_id, counted, reason"
// @Success      200   {object}  dto.StockCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/counts [post]
func (h *StockHandler) Count(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}
	var in dto.StockCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	mov, err := h.tx.ReconcileCount(c.Context(), transaction.CountInputFromRequest(userID, in))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.StockCountResponse{StockItemID: in.StockItemID, Counted: in.Counted}
	if mov != nil {
		m := dto.NewStockMovementResponse(mov)
		out.Adjusted = true
		out.Movement = &m
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Kardex de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id     path   int     true   "ID de artículo"
// @Param        from   query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to     query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        limit  query  int     false  "por defecto 100"
// @Success      200  {object}  dto.ListResponse[dto.StockMovementResponse]
// @Router       /api/stock/items/{id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	q, err := rangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	from, to, err := parseOptionalRange(q)
	if err != nil {
		return writeError(c, err)
	}
	movs, err := h.queries.MovementsForItem(c.Context(), id, from, to, q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewStockMovementResponses(movs)))
}

// LedgerCheck godoc
// @Summary      Verificar kardex contra existencia
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de artículo"
// @Success      200  {object}  dto.LedgerCheckResponse
// @Router       /api/stock/items/{id}/ledger-check [get]
func (h *StockHandler) LedgerCheck(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.queries.VerifyLedger(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LedgerCheckResponse{
		StockItemID: r.StockItemID,
		Stock:       r.Stock,
		Replayed:    r.Replayed,
		Movements:   r.Movements,
		Consistent:  r.Consistent,
		Problem:     r.Problem,
	})
}

// LowStock godoc
// @Summary      Artículos en o bajo su stock mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "por defecto 100"
// @Success      200  {object}  dto.ListResponse[dto.LowStockItemDTO]
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.queries.LowStock(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewLowStockItems(items)))
}
