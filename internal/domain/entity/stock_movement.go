package entity

import (
	"fmt"
	"time"
)

// Tipos de movimiento de stock.
const (
	MovementKindIn         = "Entrada"
	MovementKindOut        = "Salida"
	MovementKindAdjustment = "Ajuste"
)

// StockMovement es un asiento del kardex (append-only).
// StockBefore y StockAfter se capturan al momento del movimiento y nunca se recalculan.
type StockMovement struct {
	ID            int64
	StockItemID   int64
	Kind          string
	Quantity      int64 // con signo: positivo entra, negativo sale
	StockBefore   int64
	StockAfter    int64
	ReferenceType string
	ReferenceID   *int64
	BatchID       string // uuid compartido por los movimientos de una misma transacción
	UserID        int64
	Reason        string
	CreatedAt     time.Time
}

// Validate comprueba la aritmética del asiento y el signo según el tipo.
func (m *StockMovement) Validate() error {
	if m.StockAfter != m.StockBefore+m.Quantity {
		return fmt.Errorf("movimiento %d: %d + %d != %d", m.ID, m.StockBefore, m.Quantity, m.StockAfter)
	}
	if m.StockAfter < 0 {
		return fmt.Errorf("movimiento %d: stock negativo %d", m.ID, m.StockAfter)
	}
	switch m.Kind {
	case MovementKindIn:
		if m.Quantity <= 0 {
			return fmt.Errorf("movimiento %d: entrada con cantidad %d", m.ID, m.Quantity)
		}
	case MovementKindOut:
		if m.Quantity >= 0 {
			return fmt.Errorf("movimiento %d: salida con cantidad %d", m.ID, m.Quantity)
		}
	case MovementKindAdjustment:
		if m.Quantity == 0 {
			return fmt.Errorf("movimiento %d: ajuste en cero", m.ID)
		}
	default:
		return fmt.Errorf("movimiento %d: tipo desconocido %q", m.ID, m.Kind)
	}
	return nil
}
