package entity

import "time"

// Tipos y estados de notificación de almacén.
const (
	NotificationTypeLowStock   = "LOW_STOCK"
	NotificationTypeOutOfStock = "OUT_OF_STOCK"

	NotificationStatusNew      = "NEW"
	NotificationStatusRead     = "READ"
	NotificationStatusResolved = "RESOLVED"
)

// WarehouseNotification aviso generado por el almacén (ej. stock bajo mínimo).
type WarehouseNotification struct {
	ID        int64
	ProductID int64
	Date      time.Time
	Type      string
	Message   string
	Status    string
}

// Open indica si la notificación aún no se ha resuelto.
func (n WarehouseNotification) Open() bool {
	return n.Status != NotificationStatusResolved
}
