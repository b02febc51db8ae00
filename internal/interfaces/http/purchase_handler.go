package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licoreria-api/internal/application/dto"
	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
)

// PurchaseHandler maneja compras a proveedor (protegido).
type PurchaseHandler struct {
	tx      TransactionService
	queries QueryService
}

func NewPurchaseHandler(tx TransactionService, queries QueryService) *PurchaseHandler {
	return &PurchaseHandler{tx: tx, queries: queries}
}

// Create godoc
// @Summary      Registrar compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "folio, supplier_id, lines"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	p, err := h.tx.CreatePurchase(c.Context(), transaction.PurchaseInputFromRequest(userID, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseResponse(p))
}

// GetByID godoc
// @Summary      Obtener compra con sus líneas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.queries.GetPurchase(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPurchaseResponse(p))
}

func (h *PurchaseHandler) Lines(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	lines, err := h.queries.PurchaseLines(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewPurchaseLineResponses(lines)))
}

// List godoc
// @Summary      Compras por rango de fechas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  true   "RFC3339 o YYYY-MM-DD"
// @Param        to     query  string  true   "RFC3339 o YYYY-MM-DD (inclusive)"
// @Param        limit  query  int     false  "por defecto 100, máximo 500"
// @Success      200  {object}  dto.ListResponse[dto.PurchaseResponse]
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	q, err := rangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	from, to, err := parseRange(q)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.queries.ListPurchases(c.Context(), from, to, q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewPurchaseResponses(list)))
}
