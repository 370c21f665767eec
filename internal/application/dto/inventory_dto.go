package dto

import "time"

// MovementRequest entrada para registrar o reemplazar un movimiento de almacén.
type MovementRequest struct {
	ProductID      int64      `json:"product_id"`
	Date           *time.Time `json:"date"` // nil = ahora
	Type           string     `json:"type"` // IN | OUT
	Quantity       int        `json:"quantity"`
	Reason         string     `json:"reason"`
	DocumentNumber string     `json:"document_number"`
	DocumentType   string     `json:"document_type"`
	Notes          string     `json:"notes"`
}

// MovementResponse salida de un movimiento con el stock resultante del producto.
type MovementResponse struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	Date           time.Time `json:"date"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	Reason         string    `json:"reason"`
	DocumentNumber string    `json:"document_number"`
	DocumentType   string    `json:"document_type"`
	Notes          string    `json:"notes"`
	StockAfter     *int      `json:"stock_after,omitempty"`
}

// MovementListRequest filtros del listado de movimientos.
type MovementListRequest struct {
	PageRequest
	ProductID int64  `query:"product_id"`
	Type      string `query:"type"`
	From      string `query:"from"`
	To        string `query:"to"`
}
