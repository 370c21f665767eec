package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear o reemplazar (PUT) un producto. Active por defecto true.
type CreateProductRequest struct {
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	Category          string          `json:"category"`
	AlternativeSKU    string          `json:"alternative_sku"`
	Weight            decimal.Decimal `json:"weight"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	MinimumQuantity   int             `json:"minimum_quantity"`
	AcquisitionCost   decimal.Decimal `json:"acquisition_cost"`
	Active            *bool           `json:"active"`
	SupplierID        *int64          `json:"supplier_id"`
	WarehousePosition string          `json:"warehouse_position"`
	VATRate           decimal.Decimal `json:"vat_rate"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
// Quantity se modifica vía movimientos de almacén, salvo ajuste explícito.
type UpdateProductRequest struct {
	Code              *string          `json:"code"`
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          *int             `json:"quantity"`
	Category          *string          `json:"category"`
	AlternativeSKU    *string          `json:"alternative_sku"`
	Weight            *decimal.Decimal `json:"weight"`
	UnitOfMeasure     *string          `json:"unit_of_measure"`
	MinimumQuantity   *int             `json:"minimum_quantity"`
	AcquisitionCost   *decimal.Decimal `json:"acquisition_cost"`
	Active            *bool            `json:"active"`
	SupplierID        *int64           `json:"supplier_id"`
	ClearSupplier     bool             `json:"clear_supplier"`
	WarehousePosition *string          `json:"warehouse_position"`
	VATRate           *decimal.Decimal `json:"vat_rate"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                int64           `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	Category          string          `json:"category"`
	AlternativeSKU    string          `json:"alternative_sku"`
	Weight            decimal.Decimal `json:"weight"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	MinimumQuantity   int             `json:"minimum_quantity"`
	AcquisitionCost   decimal.Decimal `json:"acquisition_cost"`
	Active            bool            `json:"active"`
	SupplierID        *int64          `json:"supplier_id"`
	WarehousePosition string          `json:"warehouse_position"`
	VATRate           decimal.Decimal `json:"vat_rate"`
}

// ProductListRequest filtros del listado de productos.
type ProductListRequest struct {
	PageRequest
	ActiveOnly bool   `query:"active_only"`
	Category   string `query:"category"`
	SupplierID int64  `query:"supplier_id"`
}
