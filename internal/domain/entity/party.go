package entity

// Tipos de contraparte referenciados por los documentos.
const (
	PartyClient   = "cliente"
	PartySupplier = "proveedor"
	PartyEmployee = "empleado"
)

// Party es la vista mínima de cliente, proveedor o empleado que consume el motor.
type Party struct {
	ID     int64
	Kind   string
	Name   string
	Active bool
}
