package billing

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación PDF de una factura con sus líneas ya cargadas.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
