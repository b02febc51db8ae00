package dto

// RangeQuery parámetros de listados por rango de fechas (?from=&to=&limit=).
// Las fechas aceptan RFC3339 o YYYY-MM-DD.
type RangeQuery struct {
	From  string `query:"from"`
	To    string `query:"to"`
	Limit int    `query:"limit"`
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// NewList construye la respuesta de un listado.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Total: len(items), Items: items}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
