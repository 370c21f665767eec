package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido a proveedor.
const (
	SupplierOrderStatusDraft     = "DRAFT"
	SupplierOrderStatusSent      = "SENT"
	SupplierOrderStatusReceived  = "RECEIVED"
	SupplierOrderStatusCancelled = "CANCELLED"
)

// SupplierOrder cabecera de un pedido a proveedor.
type SupplierOrder struct {
	ID           int64
	SupplierID   int64
	SupplierName string // derivado
	OrderDate    time.Time
	Status       string
	Total        decimal.Decimal
	Notes        string
	Items        []SupplierOrderItem
}

// SupplierOrderItem línea de un pedido a proveedor.
type SupplierOrderItem struct {
	ID              int64
	SupplierOrderID int64
	ProductID       int64
	ProductCode     string // derivado
	ProductName     string // derivado
	Quantity        int
	UnitPrice       decimal.Decimal
	Total           decimal.Decimal
}

// Recalculate fija el total de cada línea (Quantity × UnitPrice) y el de la cabecera.
func (o *SupplierOrder) Recalculate() {
	total := decimal.Zero
	for k := range o.Items {
		it := &o.Items[k]
		it.Total = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(it.Total)
	}
	o.Total = total
}
