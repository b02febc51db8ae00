package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licoreria-api/internal/application/dto"
	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
)

// SaleHandler maneja ventas (protegido).
type SaleHandler struct {
	tx      TransactionService
	queries QueryService
}

// NewSaleHandler construye el handler.
func NewSaleHandler(tx TransactionService, queries QueryService) *SaleHandler {
	return &SaleHandler{tx: tx, queries: queries}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "folio, payment_method, lines"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	sale, err := h.tx.CreateSale(c.Context(), transaction.SaleInputFromRequest(userID, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(sale))
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	sale, err := h.queries.GetSale(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSaleResponse(sale))
}

// Lines godoc
// @Summary      Líneas de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de venta"
// @Success      200  {object}  dto.ListResponse[dto.SaleLineResponse]
// @Router       /api/sales/{id}/lines [get]
func (h *SaleHandler) Lines(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	lines, err := h.queries.SaleLines(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewSaleLineResponses(lines)))
}

// Returns godoc
// @Summary      Devoluciones de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de venta"
// @Success      200  {object}  dto.ListResponse[dto.ReturnResponse]
// @Router       /api/sales/{id}/returns [get]
func (h *SaleHandler) Returns(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	rets, err := h.queries.ReturnsForSale(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewReturnResponses(rets)))
}

// List godoc
// @Summary      Ventas por rango de fechas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  true   "RFC3339 o YYYY-MM-DD"
// @Param        to     query  string  true   "RFC3339 o YYYY-MM-DD (inclusive)"
// @Param        limit  query  int     false  "por defecto 100, máximo 500"
// @Success      200  {object}  dto.ListResponse[dto.SaleResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	q, err := rangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	from, to, err := parseRange(q)
	if err != nil {
		return writeError(c, err)
	}
	sales, err := h.queries.ListSales(c.Context(), from, to, q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewSaleResponses(sales)))
}
