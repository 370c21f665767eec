package sqlite

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

var invoiceSortable = map[string]string{
	"id":       "i.id",
	"number":   "i.number",
	"date":     "i.date",
	"customer": "c.last_name",
	"total":    "CAST(i.total AS REAL)",
	"status":   "i.status",
}

const invoiceColumns = `i.id, i.number, i.date, i.customer_id, i.taxable_amount, i.vat, i.total, i.status,
	c.first_name || ' ' || c.last_name AS customer_name`

// InvoiceRepo facturas (cabecera + líneas) sobre SQLite.
type InvoiceRepo struct {
	db *gorm.DB
}

func (r *InvoiceRepo) headers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("invoices i").
		Select(invoiceColumns).
		Joins("JOIN customers c ON c.id = i.customer_id")
}

func insertInvoiceItems(tx *gorm.DB, invoiceID int64, items []entity.InvoiceItem) ([]int64, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]invoiceItemRow, len(items))
	for k, it := range items {
		rows[k] = invoiceItemRow{
			InvoiceID: invoiceID, ProductID: it.ProductID, Quantity: it.Quantity,
			UnitPrice: it.UnitPrice, VATRate: it.VATRate, Total: it.Total,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, mapError("insert invoice item", err)
	}
	ids := make([]int64, len(rows))
	for k := range rows {
		ids[k] = rows[k].ID
	}
	return ids, nil
}

func setInvoiceIDs(inv *entity.Invoice, id int64, itemIDs []int64) {
	inv.ID = id
	for k := range inv.Items {
		inv.Items[k].ID = itemIDs[k]
		inv.Items[k].InvoiceID = id
	}
}

// Create inserta la factura con sus líneas. Un número repetido devuelve ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) (int64, error) {
	var (
		id      int64
		itemIDs []int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := invoiceRow{
			Number: inv.Number, Date: utc(inv.Date), CustomerID: inv.CustomerID,
			TaxableAmount: inv.TaxableAmount, VAT: inv.VAT, Total: inv.Total, Status: inv.Status,
		}
		if err := tx.Create(&row).Error; err != nil {
			return mapError("insert invoice", err)
		}
		ids, err := insertInvoiceItems(tx, row.ID, inv.Items)
		if err != nil {
			return err
		}
		id, itemIDs = row.ID, ids
		return nil
	})
	if err != nil {
		return 0, err
	}
	setInvoiceIDs(inv, id, itemIDs)
	return id, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	var row invoiceRow
	if err := r.headers(ctx).Where("i.id = ?", id).Take(&row).Error; err != nil {
		return nil, mapError("get invoice", err)
	}
	inv := row.entity()
	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// Update reemplaza cabecera y líneas.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	var itemIDs []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&invoiceRow{}).Where("id = ?", inv.ID).Updates(map[string]any{
			"number":         inv.Number,
			"date":           utc(inv.Date),
			"customer_id":    inv.CustomerID,
			"taxable_amount": inv.TaxableAmount,
			"vat":            inv.VAT,
			"total":          inv.Total,
			"status":         inv.Status,
		})
		if err := expectOne("update invoice", res); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&invoiceItemRow{}).Error; err != nil {
			return mapError("delete invoice items", err)
		}
		ids, err := insertInvoiceItems(tx, inv.ID, inv.Items)
		itemIDs = ids
		return err
	})
	if err != nil {
		return err
	}
	setInvoiceIDs(inv, inv.ID, itemIDs)
	return nil
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete invoice", r.db.WithContext(ctx).Where("id = ?", id).Delete(&invoiceRow{}))
}

// List lista cabeceras de factura.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	q := r.headers(ctx)
	if f.CustomerID != nil {
		q = q.Where("i.customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("i.status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("i.date >= ?", utc(*f.From))
	}
	if f.To != nil {
		q = q.Where("i.date <= ?", utc(*f.To))
	}
	q = search(q, f.Search, "i.number", "c.first_name", "c.last_name")
	var rows []invoiceRow
	if err := page(q, f.ListFilter, invoiceSortable, "i.id").Find(&rows).Error; err != nil {
		return nil, mapError("list invoices", err)
	}
	out := make([]*entity.Invoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}

func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error) {
	var rows []invoiceItemRow
	err := r.db.WithContext(ctx).Table("invoice_items ii").
		Select(`ii.id, ii.invoice_id, ii.product_id, ii.quantity, ii.unit_price, ii.vat_rate, ii.total,
			p.code AS product_code, p.name AS product_name`).
		Joins("JOIN products p ON p.id = ii.product_id").
		Where("ii.invoice_id = ?", invoiceID).
		Order("ii.id").
		Find(&rows).Error
	if err != nil {
		return nil, mapError("list invoice items", err)
	}
	items := make([]entity.InvoiceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.entity())
	}
	return items, nil
}

// LastNumberSequence devuelve el mayor NNNN de los números "YYYY/NNNN" del año.
func (r *InvoiceRepo) LastNumberSequence(ctx context.Context, year int) (int, error) {
	prefix := yearPrefix(year) + "/"
	var numbers []string
	err := r.db.WithContext(ctx).Model(&invoiceRow{}).
		Where("substr(number, 1, ?) = ?", len(prefix), prefix).
		Pluck("number", &numbers).Error
	if err != nil {
		return 0, mapError("last invoice number", err)
	}
	seq := 0
	for _, n := range numbers {
		digits := strings.TrimPrefix(n, prefix)
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			continue
		}
		if v, err := strconv.Atoi(digits); err == nil && v > seq {
			seq = v
		}
	}
	return seq, nil
}
