package repository

import "time"

// ListFilter parámetros comunes de listado. Limit 0 = sin límite.
// Sort vacío = orden de inserción (id ascendente).
type ListFilter struct {
	Limit  int
	Offset int
	Sort   string // nombre de columna; cada repositorio valida contra su lista blanca
	Desc   bool
	Search string
}

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	ListFilter
	ActiveOnly bool
	Category   string
	SupplierID *int64
}

// OrderFilter filtros de listado de pedidos de cliente.
type OrderFilter struct {
	ListFilter
	CustomerID *int64
	Status     string
}

// InvoiceFilter filtros de listado de facturas.
type InvoiceFilter struct {
	ListFilter
	CustomerID *int64
	Status     string
	From, To   *time.Time
}

// SupplierOrderFilter filtros de listado de pedidos a proveedor.
type SupplierOrderFilter struct {
	ListFilter
	SupplierID *int64
	Status     string
}

// PriceListFilter filtros de listado de listas de precios.
type PriceListFilter struct {
	ListFilter
	SupplierID *int64
	ProductID  *int64
	ValidOn    *time.Time
}

// MovementFilter filtros de listado de movimientos de almacén.
type MovementFilter struct {
	ListFilter
	ProductID *int64
	Type      string
	From, To  *time.Time
}

// NotificationFilter filtros de listado de notificaciones.
type NotificationFilter struct {
	ListFilter
	ProductID *int64
	Status    string
}
