package entity

import "time"

// Tipos de movimiento de almacén.
const (
	MovementTypeIN  = "IN"  // carga
	MovementTypeOUT = "OUT" // descarga
)

// WarehouseMovement representa una carga o descarga de almacén de un producto.
// Quantity siempre es positiva; el signo lo da Type.
type WarehouseMovement struct {
	ID             int64
	ProductID      int64
	Date           time.Time
	Type           string
	Quantity       int
	Reason         string
	DocumentNumber string
	DocumentType   string
	Notes          string
}

// StockDelta devuelve la variación de stock que produce el movimiento.
func (m WarehouseMovement) StockDelta() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
