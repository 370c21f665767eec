package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierOrderItemRequest línea de pedido a proveedor.
type SupplierOrderItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SupplierOrderRequest entrada para crear o reemplazar un pedido a proveedor.
type SupplierOrderRequest struct {
	SupplierID int64                      `json:"supplier_id"`
	OrderDate  *time.Time                 `json:"order_date"`
	Status     string                     `json:"status"`
	Notes      string                     `json:"notes"`
	Items      []SupplierOrderItemRequest `json:"items"`
}

// SupplierOrderItemResponse línea de pedido a proveedor.
type SupplierOrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// SupplierOrderResponse salida de un pedido a proveedor.
type SupplierOrderResponse struct {
	ID           int64                       `json:"id"`
	SupplierID   int64                       `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	OrderDate    time.Time                   `json:"order_date"`
	Status       string                      `json:"status"`
	Total        decimal.Decimal             `json:"total"`
	Notes        string                      `json:"notes"`
	Items        []SupplierOrderItemResponse `json:"items,omitempty"`
}

// SupplierOrderListRequest filtros del listado de pedidos a proveedor.
type SupplierOrderListRequest struct {
	PageRequest
	SupplierID int64  `query:"supplier_id"`
	Status     string `query:"status"`
}

// PriceListRequest entrada para crear o reemplazar un precio de proveedor.
type PriceListRequest struct {
	SupplierID          int64           `json:"supplier_id"`
	ProductID           int64           `json:"product_id"`
	SupplierProductCode string          `json:"supplier_product_code"`
	Price               decimal.Decimal `json:"price"`
	MinimumQuantity     int             `json:"minimum_quantity"`
	ValidityStart       time.Time       `json:"validity_start"`
	ValidityEnd         *time.Time      `json:"validity_end"`
	Notes               string          `json:"notes"`
}

// PriceListResponse salida de un precio de proveedor.
type PriceListResponse struct {
	ID                  int64           `json:"id"`
	SupplierID          int64           `json:"supplier_id"`
	ProductID           int64           `json:"product_id"`
	SupplierProductCode string          `json:"supplier_product_code"`
	Price               decimal.Decimal `json:"price"`
	MinimumQuantity     int             `json:"minimum_quantity"`
	ValidityStart       time.Time       `json:"validity_start"`
	ValidityEnd         *time.Time      `json:"validity_end"`
	Notes               string          `json:"notes"`
}

// PriceListListRequest filtros del listado de precios.
type PriceListListRequest struct {
	PageRequest
	SupplierID int64  `query:"supplier_id"`
	ProductID  int64  `query:"product_id"`
	ValidOn    string `query:"valid_on"` // YYYY-MM-DD
}
