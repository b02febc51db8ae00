package entity

// Estados de documento (valores tal como se guardan en la BD).
const (
	DocumentStatusPending   = "Pendiente"
	DocumentStatusCompleted = "Completada"
	DocumentStatusCancelled = "Cancelada"
)

// Tipos de documento que originan movimientos de stock (referencia_tipo).
const (
	ReferenceSale       = "Venta"
	ReferencePurchase   = "Compra"
	ReferenceReturn     = "Devolucion"
	ReferenceAdjustment = "Ajuste"
)

// Límites de longitud de los campos de texto (columnas VARCHAR).
const (
	MaxFolioLength         = 50
	MaxPaymentMethodLength = 50
	MaxReasonLength        = 500
	MaxNotesLength         = 1000
)
