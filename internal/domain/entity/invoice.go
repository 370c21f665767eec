package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusIssued    = "ISSUED"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

var hundred = decimal.NewFromInt(100)

// Invoice representa la cabecera de una factura.
type Invoice struct {
	ID            int64
	Number        string
	Date          time.Time
	CustomerID    int64
	CustomerName  string // derivado (join con customers)
	TaxableAmount decimal.Decimal
	VAT           decimal.Decimal
	Total         decimal.Decimal
	Status        string
	Items         []InvoiceItem
}

// InvoiceItem representa una línea de factura. Total se persiste y se recalcula en cada escritura.
type InvoiceItem struct {
	ID          int64
	InvoiceID   int64
	ProductID   int64
	ProductCode string // derivado (join con products)
	ProductName string // derivado (join con products)
	Quantity    int
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal // porcentaje
	Total       decimal.Decimal
}

// Taxable devuelve Quantity × UnitPrice (base imponible de la línea).
func (i InvoiceItem) Taxable() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// VATAmount devuelve el impuesto de la línea.
func (i InvoiceItem) VATAmount() decimal.Decimal {
	return i.Taxable().Mul(i.VATRate).Div(hundred)
}

// ComputeTotal devuelve base imponible + IVA de la línea.
func (i InvoiceItem) ComputeTotal() decimal.Decimal {
	return i.Taxable().Add(i.VATAmount())
}

// Recalculate actualiza el total de cada línea y los importes de cabecera.
func (inv *Invoice) Recalculate() {
	taxable, vat := decimal.Zero, decimal.Zero
	for k := range inv.Items {
		it := &inv.Items[k]
		it.Total = it.ComputeTotal()
		taxable = taxable.Add(it.Taxable())
		vat = vat.Add(it.VATAmount())
	}
	inv.TaxableAmount = taxable
	inv.VAT = vat
	inv.Total = taxable.Add(vat)
}
