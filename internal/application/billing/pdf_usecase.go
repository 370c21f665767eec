package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una factura.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(invoices repository.InvoiceRepository, customers repository.CustomerRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, customers: customers, generator: generator}
}

// DownloadInvoicePDF carga factura, líneas y cliente y devuelve el PDF con su nombre de fichero.
// Devuelve domain.ErrNotFound si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID int64) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if len(inv.Items) == 0 {
		if inv.Items, err = uc.invoices.ListItems(ctx, invoiceID); err != nil {
			return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
		}
	}
	customer, err := uc.customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("fattura_%s.pdf", strings.ReplaceAll(inv.Number, "/", "-"))
	return pdfBytes, filename, nil
}
