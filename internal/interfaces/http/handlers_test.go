package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Licoreria-api/internal/application/dto"
	"github.com/jhoicas/Licoreria-api/internal/application/query"
	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Licoreria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Licoreria-api/pkg/jwt"
	"github.com/jhoicas/Licoreria-api/pkg/logger"
)

type api struct {
	t     *testing.T
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memory.NewStore()
	policy, err := pricing.NewFlatRate(decimal.NewFromInt(16), decimal.NewFromInt(16))
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Transactions: transaction.NewEngine(store, policy, nil),
		Queries:      query.NewService(store.Repositories()),
		JWTSecret:    testJWTSecret,
	})
	return &api{t: t, app: app, store: store}
}

// call envía la petición con token del rol dado y decodifica la respuesta en out (si no es nil).
func (a *api) call(method, path, role string, body any, out any) int {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(a.t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(a.t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if out != nil {
		require.NoError(a.t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func (a *api) seedItem(code string, stock int64) int64 {
	a.t.Helper()
	id := a.store.PutItem(entity.StockItem{Code: code, SalePrice: decimal.NewFromInt(150), MinStock: 2, Active: true}).ID
	if stock > 0 {
		status := a.call(http.MethodPost, "/api/stock/adjustments", pkgjwt.RoleWarehouse,
			dto.AdjustStockRequest{StockItemID: id, Quantity: stock, Reason: "inventario inicial"}, nil)
		require.Equal(a.t, http.StatusCreated, status)
	}
	return id
}

func saleBody(folio string, itemID, qty int64) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Folio: folio, PaymentMethod: "Efectivo",
		Lines: []dto.SaleLineRequest{{StockItemID: itemID, Quantity: qty, UnitPrice: decimal.RequireFromString("150.00"), Discount: decimal.RequireFromString("10.00")}},
	}
}

func TestAPI_FlujoVentaDevolucionKardex(t *testing.T) {
	a := newAPI(t)
	id := a.seedItem("RON", 10)

	var sale dto.SaleResponse
	status := a.call(http.MethodPost, "/api/sales", pkgjwt.RoleSeller, saleBody("V-1", id, 3), &sale)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.RequireFromString("510.40").Equal(sale.Total), sale.Total.String())
	assert.Equal(t, testUserID, sale.UserID)
	require.Len(t, sale.Lines, 1)

	var got dto.SaleResponse
	status = a.call(http.MethodGet, fmt.Sprintf("/api/sales/%d", sale.ID), pkgjwt.RoleWarehouse, nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "V-1", got.Folio)
	assert.Len(t, got.Lines, 1)

	var ret dto.ReturnResponse
	status = a.call(http.MethodPost, "/api/returns", pkgjwt.RoleSeller, dto.CreateReturnRequest{
		Folio: "D-1", SaleID: sale.ID, Reason: "defecto",
		Lines: []dto.ReturnLineRequest{{SaleLineID: sale.Lines[0].ID, Quantity: 1}},
	}, &ret)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.RequireFromString("146.67").Equal(ret.Subtotal), ret.Subtotal.String())

	var rets dto.ListResponse[dto.ReturnResponse]
	status = a.call(http.MethodGet, fmt.Sprintf("/api/sales/%d/returns", sale.ID), pkgjwt.RoleSeller, nil, &rets)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, rets.Total)

	var movs dto.ListResponse[dto.StockMovementResponse]
	status = a.call(http.MethodGet, fmt.Sprintf("/api/stock/items/%d/movements", id), pkgjwt.RoleWarehouse, nil, &movs)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 3, movs.Total)
	assert.Equal(t, entity.ReferenceReturn, movs.Items[0].ReferenceType)
	assert.Equal(t, int64(8), movs.Items[0].StockAfter)

	var check dto.LedgerCheckResponse
	status = a.call(http.MethodGet, fmt.Sprintf("/api/stock/items/%d/ledger-check", id), pkgjwt.RoleWarehouse, nil, &check)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, check.Consistent, check.Problem)
	assert.Equal(t, int64(8), check.Stock)
}

func TestAPI_StockInsuficienteRetorna409(t *testing.T) {
	a := newAPI(t)
	id := a.seedItem("GIN", 2)

	var e dto.ErrorResponse
	status := a.call(http.MethodPost, "/api/sales", pkgjwt.RoleSeller, saleBody("V-X", id, 3), &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	status = a.call(http.MethodPost, "/api/sales", pkgjwt.RoleSeller, saleBody("V-OK", id, 2), nil)
	require.Equal(t, http.StatusCreated, status)
	status = a.call(http.MethodPost, "/api/sales", pkgjwt.RoleSeller, saleBody("V-OK", id, 0), &e)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_MapeoDeErrores(t *testing.T) {
	a := newAPI(t)
	id := a.seedItem("VINO", 5)
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/sales", pkgjwt.RoleSeller, saleBody("DUP", id, 1), nil))

	cases := []struct {
		name, method, path, role string
		body                     any
		status                   int
		code                     string
	}{
		{"cuerpo inválido", http.MethodPost, "/api/sales", pkgjwt.RoleSeller, "{no-json", http.StatusBadRequest, "INVALID_BODY"},
		{"venta sin líneas", http.MethodPost, "/api/sales", pkgjwt.RoleSeller, dto.CreateSaleRequest{Folio: "A", PaymentMethod: "Efectivo"}, http.StatusBadRequest, "VALIDATION"},
		{"folio duplicado", http.MethodPost, "/api/sales", pkgjwt.RoleSeller, saleBody("DUP", id, 1), http.StatusConflict, "CONFLICT"},
		{"venta inexistente", http.MethodGet, "/api/sales/9999", pkgjwt.RoleSeller, nil, http.StatusNotFound, "NOT_FOUND"},
		{"id no numérico", http.MethodGet, "/api/purchases/abc", pkgjwt.RoleSeller, nil, http.StatusBadRequest, "VALIDATION"},
		{"rango requerido", http.MethodGet, "/api/sales", pkgjwt.RoleSeller, nil, http.StatusBadRequest, "VALIDATION"},
		{"rango invertido", http.MethodGet, "/api/returns?from=2024-02-01&to=2024-01-01", pkgjwt.RoleSeller, nil, http.StatusBadRequest, "VALIDATION"},
		{"ajuste negativo excesivo", http.MethodPost, "/api/stock/adjustments", pkgjwt.RoleWarehouse, dto.AdjustStockRequest{StockItemID: id, Quantity: -50, Reason: "x"}, http.StatusBadRequest, "VALIDATION"},
		{"bodeguero no vende", http.MethodPost, "/api/sales", pkgjwt.RoleWarehouse, saleBody("B", id, 1), http.StatusForbidden, "FORBIDDEN"},
		{"vendedor no compra", http.MethodPost, "/api/purchases", pkgjwt.RoleSeller, dto.CreatePurchaseRequest{Folio: "C"}, http.StatusForbidden, "FORBIDDEN"},
		{"sin token", http.MethodGet, "/api/stock/low", "", nil, http.StatusUnauthorized, "MISSING_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var e dto.ErrorResponse
			status := a.call(tc.method, tc.path, tc.role, tc.body, &e)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestAPI_ComprasYListados(t *testing.T) {
	a := newAPI(t)
	id := a.seedItem("TEQUILA", 0)

	var p dto.PurchaseResponse
	status := a.call(http.MethodPost, "/api/purchases", pkgjwt.RoleWarehouse, dto.CreatePurchaseRequest{
		Folio: "C-1",
		Lines: []dto.PurchaseLineRequest{{StockItemID: id, Quantity: 12, UnitPrice: decimal.RequireFromString("95.50")}},
	}, &p)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.RequireFromString("1146").Equal(p.Subtotal), p.Subtotal.String())

	var list dto.ListResponse[dto.PurchaseResponse]
	from := p.IssuedAt.UTC().Format("2006-01-02")
	status = a.call(http.MethodGet, "/api/purchases?from="+from+"&to="+from, pkgjwt.RoleWarehouse, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, list.Total)

	var lines dto.ListResponse[dto.PurchaseLineResponse]
	status = a.call(http.MethodGet, fmt.Sprintf("/api/purchases/%d/lines", p.ID), pkgjwt.RoleWarehouse, nil, &lines)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, lines.Total)
	assert.Equal(t, int64(12), lines.Items[0].Quantity)
}

func TestAPI_ConteoYStockBajo(t *testing.T) {
	a := newAPI(t)
	id := a.seedItem("LICOR", 6)

	var res dto.StockCountResponse
	status := a.call(http.MethodPost, "/api/stock/counts", pkgjwt.RoleWarehouse,
		dto.StockCountRequest{StockItemID: id, Counted: 6, Reason: "conteo"}, &res)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, res.Adjusted)
	assert.Nil(t, res.Movement)

	status = a.call(http.MethodPost, "/api/stock/counts", pkgjwt.RoleWarehouse,
		dto.StockCountRequest{StockItemID: id, Counted: 1, Reason: "conteo"}, &res)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Adjusted)
	require.NotNil(t, res.Movement)
	assert.Equal(t, int64(-5), res.Movement.Quantity)

	var low dto.ListResponse[dto.LowStockItemDTO]
	status = a.call(http.MethodGet, "/api/stock/low", pkgjwt.RoleSeller, nil, &low)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, low.Total)
	assert.Equal(t, int64(1), low.Items[0].Shortfall)
}
