package entity

import "github.com/shopspring/decimal"

// Product representa un artículo del catálogo con su stock de almacén.
// Active es un borrado lógico: un producto inactivo sigue referenciado por pedidos y facturas
// históricos pero no puede usarse en documentos nuevos.
type Product struct {
	ID                int64
	Code              string
	Name              string
	Description       string
	Price             decimal.Decimal // precio de venta
	Quantity          int             // stock disponible
	Category          string
	AlternativeSKU    string
	Weight            decimal.Decimal
	UnitOfMeasure     string
	MinimumQuantity   int
	AcquisitionCost   decimal.Decimal
	Active            bool
	SupplierID        *int64 // proveedor habitual (opcional)
	WarehousePosition string
	VATRate           decimal.Decimal // IVA en porcentaje: 22 = 22%
}
