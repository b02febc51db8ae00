package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licoreria-api/internal/application/dto"
	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
)

// ReturnHandler maneja devoluciones de venta (protegido).
type ReturnHandler struct {
	tx      TransactionService
	queries QueryService
}

func NewReturnHandler(tx TransactionService, queries QueryService) *ReturnHandler {
	return &ReturnHandler{tx: tx, queries: queries}
}

// Create godoc
// @Summary      Registrar devolución sobre una venta
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "folio, sale_id, reason, lines"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	ret, err := h.tx.CreateReturn(c.Context(), transaction.ReturnInputFromRequest(userID, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReturnResponse(ret))
}

func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	ret, err := h.queries.GetReturn(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewReturnResponse(ret))
}

func (h *ReturnHandler) Lines(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	lines, err := h.queries.ReturnLines(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewReturnLineResponses(lines)))
}

func (h *ReturnHandler) List(c *fiber.Ctx) error {
	q, err := rangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	from, to, err := parseRange(q)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.queries.ListReturns(c.Context(), from, to, q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.NewReturnResponses(list)))
}
