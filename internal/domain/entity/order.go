package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de cliente.
const (
	OrderStatusNew        = "NEW"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Order representa la cabecera de un pedido de cliente.
// CustomerName es un dato derivado (join con customers), no se persiste.
type Order struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	OrderDate    time.Time
	Status       string
	Total        decimal.Decimal
	Items        []OrderItem
}

// OrderItem representa una línea de pedido. Solo existe asociada a un Order.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string // derivado (join con products)
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Total devuelve Quantity × UnitPrice.
func (i OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal suma los totales de las líneas.
func (o Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Total())
	}
	return total
}
