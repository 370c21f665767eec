package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	ListItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error)
	// LastNumberSequence mayor secuencial NNNN entre los números "YYYY/NNNN" del año (0 si no hay).
	LastNumberSequence(ctx context.Context, year int) (int, error)
}
