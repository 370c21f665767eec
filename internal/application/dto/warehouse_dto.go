package dto

import "time"

// MinimumStockRequest parámetros de reposición de un producto.
type MinimumStockRequest struct {
	MinimumQuantity   int    `json:"minimum_quantity"`
	ReorderQuantity   int    `json:"reorder_quantity"`
	LeadTimeDays      int    `json:"lead_time_days"`
	PreferredSupplier *int64 `json:"preferred_supplier"`
	Notes             string `json:"notes"`
}

// MinimumStockResponse salida de los parámetros de reposición.
type MinimumStockResponse struct {
	ProductID         int64  `json:"product_id"`
	MinimumQuantity   int    `json:"minimum_quantity"`
	ReorderQuantity   int    `json:"reorder_quantity"`
	LeadTimeDays      int    `json:"lead_time_days"`
	PreferredSupplier *int64 `json:"preferred_supplier"`
	Notes             string `json:"notes"`
}

// NotificationRequest entrada para crear o reemplazar una notificación manual.
type NotificationRequest struct {
	ProductID int64      `json:"product_id"`
	Date      *time.Time `json:"date"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
}

// NotificationResponse salida de una notificación de almacén.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
}

// NotificationListRequest filtros del listado de notificaciones.
type NotificationListRequest struct {
	PageRequest
	ProductID int64  `query:"product_id"`
	Status    string `query:"status"`
}
