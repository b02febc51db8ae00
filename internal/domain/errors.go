package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// El adaptador HTTP los traduce a 400/404/409.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("validación fallida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
)

// InsufficientStockError identifica el artículo que no alcanza para la venta.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	StockItemID int64
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: artículo %d solicitado %d disponible %d",
		ErrInsufficientStock.Error(), e.StockItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Validationf envuelve ErrValidation con un detalle legible.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf envuelve ErrNotFound con el recurso faltante.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf envuelve ErrConflict.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
