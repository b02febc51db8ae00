package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licoreria-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Transactions TransactionService
	Queries      QueryService
	JWTSecret    string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las escrituras además rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	sellers := RequireRole(jwt.RoleSeller)
	warehouse := RequireRole(jwt.RoleWarehouse)

	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Transactions, deps.Queries)
	sales.Post("/", sellers, saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/lines", saleHandler.Lines)
	sales.Get("/:id/returns", saleHandler.Returns)

	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Transactions, deps.Queries)
	purchases.Post("/", warehouse, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Get("/:id/lines", purchaseHandler.Lines)

	returns := api.Group("/returns")
	returnHandler := NewReturnHandler(deps.Transactions, deps.Queries)
	returns.Post("/", sellers, returnHandler.Create)
	returns.Get("/", returnHandler.List)
	returns.Get("/:id", returnHandler.GetByID)
	returns.Get("/:id/lines", returnHandler.Lines)

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Transactions, deps.Queries)
	stock.Post("/adjustments", warehouse, stockHandler.Adjust)
	stock.Post("/counts", warehouse, stockHandler.Count)
	stock.Get("/low", stockHandler.LowStock)
	stock.Get("/items/:id/movements", stockHandler.Movements)
	stock.Get("/items/:id/ledger-check", stockHandler.LedgerCheck)
}
