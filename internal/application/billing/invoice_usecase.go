package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// InvoiceUseCase facturas de cliente con numeración anual YYYY/NNNN.
type InvoiceUseCase struct {
	tx     repository.TxRunner
	repos  repository.Repositories
	limits dto.Limits
	now    func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(tx repository.TxRunner, repos repository.Repositories, limits dto.Limits) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, repos: repos, limits: limits, now: time.Now}
}

// Create valida y guarda la factura. Sin número se asigna el siguiente del año de la fecha;
// el IVA de cada línea toma el del producto cuando no se indica.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	var out *entity.Invoice
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		inv, err := uc.build(ctx, repos, in, nil)
		if err != nil {
			return err
		}
		if inv.Date.IsZero() {
			inv.Date = day(uc.now())
		}
		if inv.Number == "" {
			if inv.Number, err = nextNumber(ctx, repos.Invoices, inv.Date.Year()); err != nil {
				return err
			}
		}
		id, err := repos.Invoices.Create(ctx, inv)
		if err != nil {
			return err
		}
		out, err = repos.Invoices.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(out), nil
}

// GetByID obtiene la factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// Update reemplaza cabecera y líneas. Número y fecha vacíos conservan los actuales.
func (uc *InvoiceUseCase) Update(ctx context.Context, id int64, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	var out *entity.Invoice
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		current, err := repos.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		keep := make(map[int64]bool, len(current.Items))
		for _, it := range current.Items {
			keep[it.ProductID] = true
		}
		inv, err := uc.build(ctx, repos, in, keep)
		if err != nil {
			return err
		}
		inv.ID = id
		if inv.Number == "" {
			inv.Number = current.Number
		}
		if inv.Date.IsZero() {
			inv.Date = current.Date
		}
		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		out, err = repos.Invoices.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(out), nil
}

// Delete elimina la factura y sus líneas.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repos.Invoices.Delete(ctx, id)
}

// List lista cabeceras de factura.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceListRequest) (*dto.ListResponse[dto.InvoiceResponse], error) {
	f := repository.InvoiceFilter{
		ListFilter: in.PageRequest.ListFilter(uc.limits),
		Status:     strings.ToUpper(strings.TrimSpace(in.Status)),
	}
	if in.CustomerID > 0 {
		f.CustomerID = &in.CustomerID
	}
	v := domain.NewValidationError()
	f.From = parseDay(v, "from", in.From)
	f.To = parseDay(v, "to", in.To)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	list, err := uc.repos.Invoices.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvoiceResponse(inv))
	}
	return &dto.ListResponse[dto.InvoiceResponse]{Items: out, Page: dto.NewPageResponse(f.ListFilter)}, nil
}

// ListItems devuelve las líneas de una factura existente.
func (uc *InvoiceUseCase) ListItems(ctx context.Context, invoiceID int64) ([]dto.InvoiceItemResponse, error) {
	if _, err := uc.repos.Invoices.GetByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	items, err := uc.repos.Invoices.ListItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceItemResponses(items), nil
}

func (uc *InvoiceUseCase) build(ctx context.Context, repos repository.Repositories, in dto.InvoiceRequest, keep map[int64]bool) (*entity.Invoice, error) {
	v := domain.NewValidationError()
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !validStatus(status, entity.InvoiceStatusDraft, entity.InvoiceStatusIssued, entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled) {
		v.Add("status", domain.ViolationInvalid)
	}
	if err := checkCustomer(ctx, repos.Customers, in.CustomerID, v); err != nil {
		return nil, err
	}
	lines := make([]lineRef, len(in.Items))
	for i, it := range in.Items {
		lines[i] = lineRef{ProductID: it.ProductID, Quantity: it.Quantity}
		if it.UnitPrice.IsNegative() {
			v.Add(fmt.Sprintf("items[%d].unit_price", i), domain.ViolationNegative)
		}
		if it.VATRate != nil && (it.VATRate.IsNegative() || it.VATRate.GreaterThan(hundred)) {
			v.Add(fmt.Sprintf("items[%d].vat_rate", i), domain.ViolationOutOfRange)
		}
	}
	products, err := loadLineProducts(ctx, repos.Products, lines, keep, v)
	if err != nil {
		return nil, err
	}
	if !v.Empty() {
		return nil, v
	}

	inv := &entity.Invoice{
		Number:     strings.TrimSpace(in.Number),
		CustomerID: in.CustomerID,
		Status:     status,
	}
	if in.Date != nil {
		inv.Date = day(*in.Date)
	}
	for _, it := range in.Items {
		p := products[it.ProductID]
		price := it.UnitPrice
		if price.IsZero() {
			price = p.Price
		}
		rate := p.VATRate
		if it.VATRate != nil {
			rate = *it.VATRate
		}
		inv.Items = append(inv.Items, entity.InvoiceItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: price, VATRate: rate})
	}
	inv.Recalculate()
	return inv, nil
}

// nextNumber devuelve el siguiente número "YYYY/NNNN" del año.
func nextNumber(ctx context.Context, repo repository.InvoiceRepository, year int) (string, error) {
	last, err := repo.LastNumberSequence(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d/%04d", year, last+1), nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDay interpreta YYYY-MM-DD; vacío = nil.
func parseDay(v *domain.ValidationError, field, s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		v.Add(field, domain.ViolationInvalid)
		return nil
	}
	return &t
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		Date:          inv.Date,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		TaxableAmount: inv.TaxableAmount,
		VAT:           inv.VAT,
		Total:         inv.Total,
		Status:        inv.Status,
		Items:         toInvoiceItemResponses(inv.Items),
	}
}

func toInvoiceItemResponses(items []entity.InvoiceItem) []dto.InvoiceItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]dto.InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.InvoiceItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			VATRate:     it.VATRate,
			Total:       it.Total,
		})
	}
	return out
}
