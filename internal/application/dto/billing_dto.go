package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido. UnitPrice cero = precio del producto.
type OrderItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderRequest entrada para crear o reemplazar un pedido (cabecera + líneas).
type OrderRequest struct {
	CustomerID int64              `json:"customer_id"`
	OrderDate  *time.Time         `json:"order_date"` // nil = ahora
	Status     string             `json:"status"`     // vacío = NEW
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           int64               `json:"id"`
	CustomerID   int64               `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	OrderDate    time.Time           `json:"order_date"`
	Status       string              `json:"status"`
	Total        decimal.Decimal     `json:"total"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}

// OrderListRequest filtros del listado de pedidos.
type OrderListRequest struct {
	PageRequest
	CustomerID int64  `query:"customer_id"`
	Status     string `query:"status"`
}

// InvoiceItemRequest línea de factura. UnitPrice cero = precio del producto;
// VATRate nil = IVA del producto.
type InvoiceItemRequest struct {
	ProductID int64            `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	VATRate   *decimal.Decimal `json:"vat_rate"`
}

// InvoiceRequest entrada para crear o reemplazar una factura. Number vacío = numeración automática YYYY/NNNN.
type InvoiceRequest struct {
	Number     string               `json:"number"`
	Date       *time.Time           `json:"date"`
	CustomerID int64                `json:"customer_id"`
	Status     string               `json:"status"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID            int64                 `json:"id"`
	Number        string                `json:"number"`
	Date          time.Time             `json:"date"`
	CustomerID    int64                 `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	TaxableAmount decimal.Decimal       `json:"taxable_amount"`
	VAT           decimal.Decimal       `json:"vat"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceListRequest filtros del listado de facturas.
type InvoiceListRequest struct {
	PageRequest
	CustomerID int64  `query:"customer_id"`
	Status     string `query:"status"`
	From       string `query:"from"` // YYYY-MM-DD
	To         string `query:"to"`
}
