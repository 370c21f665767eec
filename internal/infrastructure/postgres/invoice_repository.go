package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceSelect = `
	SELECT i.id, i.number, i.date, i.customer_id, COALESCE(c.first_name || ' ' || c.last_name, ''),
	       i.taxable_amount, i.vat, i.total, i.status
	FROM invoices i LEFT JOIN customers c ON c.id = i.customer_id`

var invoiceSortable = map[string]string{
	"id":       "i.id",
	"number":   "i.number",
	"date":     "i.date",
	"customer": "c.last_name",
	"total":    "i.total",
	"status":   "i.status",
}

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row interface{ Scan(dest ...any) error }) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.Date, &inv.CustomerID, &inv.CustomerName,
		&inv.TaxableAmount, &inv.VAT, &inv.Total, &inv.Status)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste cabecera y líneas de la factura en una sola transacción.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) (int64, error) {
	var id int64
	var itemIDs []int64
	err := withTx(ctx, r.q, func(tx Querier) error {
		query := `
			INSERT INTO invoices (number, date, customer_id, taxable_amount, vat, total, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		err := tx.QueryRow(ctx, query,
			inv.Number, inv.Date, inv.CustomerID, inv.TaxableAmount, inv.VAT, inv.Total, inv.Status,
		).Scan(&id)
		if err != nil {
			return mapError("insert invoice", err)
		}
		itemIDs, err = insertInvoiceItems(ctx, tx, id, inv.Items)
		return err
	})
	if err != nil {
		return 0, err
	}
	setInvoiceIDs(inv, id, itemIDs)
	return id, nil
}

func insertInvoiceItems(ctx context.Context, tx Querier, invoiceID int64, items []entity.InvoiceItem) ([]int64, error) {
	query := `
		INSERT INTO invoice_items (invoice_id, product_id, quantity, unit_price, vat_rate, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	ids := make([]int64, len(items))
	for k, it := range items {
		err := tx.QueryRow(ctx, query, invoiceID, it.ProductID, it.Quantity, it.UnitPrice, it.VATRate, it.Total).Scan(&ids[k])
		if err != nil {
			return nil, mapError("insert invoice item", err)
		}
	}
	return ids, nil
}

func setInvoiceIDs(inv *entity.Invoice, id int64, itemIDs []int64) {
	inv.ID = id
	for k := range inv.Items {
		inv.Items[k].InvoiceID = id
		inv.Items[k].ID = itemIDs[k]
	}
}

// GetByID obtiene una factura completa por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, mapError("get invoice", err)
	}
	inv.Items, err = r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Update reemplaza cabecera y líneas en una sola transacción.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	var itemIDs []int64
	err := withTx(ctx, r.q, func(tx Querier) error {
		query := `
			UPDATE invoices
			SET number = $2, date = $3, customer_id = $4, taxable_amount = $5, vat = $6, total = $7, status = $8
			WHERE id = $1`
		cmd, err := tx.Exec(ctx, query,
			inv.ID, inv.Number, inv.Date, inv.CustomerID, inv.TaxableAmount, inv.VAT, inv.Total, inv.Status,
		)
		if err := expectOne("update invoice", cmd, err); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return mapError("delete invoice items", err)
		}
		itemIDs, err = insertInvoiceItems(ctx, tx, inv.ID, inv.Items)
		return err
	})
	if err != nil {
		return err
	}
	setInvoiceIDs(inv, inv.ID, itemIDs)
	return nil
}

// Delete elimina la factura y sus líneas en la misma transacción.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.q, func(tx Querier) error {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
			return mapError("delete invoice items", err)
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
		return expectOne("delete invoice", cmd, err)
	})
}

// List lista cabeceras de factura.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var w whereBuilder
	if f.CustomerID != nil {
		w.add("i.customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		w.add("i.status = ?", f.Status)
	}
	if f.From != nil {
		w.add("i.date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("i.date <= ?", *f.To)
	}
	w.search(f.Search, "i.number", "c.first_name", "c.last_name")
	query := invoiceSelect + w.sql() + w.page(f.ListFilter, invoiceSortable, "i.id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list invoices", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, mapError("scan invoice", err)
		}
		list = append(list, inv)
	}
	return list, mapError("list invoices", rows.Err())
}

// ListItems obtiene todas las líneas de una factura.
func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error) {
	query := `
		SELECT it.id, it.invoice_id, it.product_id, COALESCE(p.code, ''), COALESCE(p.name, ''),
		       it.quantity, it.unit_price, it.vat_rate, it.total
		FROM invoice_items it LEFT JOIN products p ON p.id = it.product_id
		WHERE it.invoice_id = $1 ORDER BY it.id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, mapError("list invoice items", err)
	}
	defer rows.Close()
	items := []entity.InvoiceItem{}
	for rows.Next() {
		var it entity.InvoiceItem
		err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductCode, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.VATRate, &it.Total)
		if err != nil {
			return nil, mapError("scan invoice item", err)
		}
		items = append(items, it)
	}
	return items, mapError("list invoice items", rows.Err())
}

// LastNumberSequence devuelve el mayor NNNN de los números "YYYY/NNNN" del año.
func (r *InvoiceRepo) LastNumberSequence(ctx context.Context, year int) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(split_part(number, '/', 2) AS INTEGER)), 0)
		FROM invoices
		WHERE number ~ ('^' || $1::text || '/[0-9]+$')`
	var seq int
	if err := r.q.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return 0, mapError("last invoice number", err)
	}
	return seq, nil
}
