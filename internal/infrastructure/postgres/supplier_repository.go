package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, company_name, vat_number, tax_code, address, phone, email, certified_email, website, notes`

var supplierSortable = map[string]string{
	"id":           "id",
	"company_name": "company_name",
	"vat_number":   "vat_number",
	"email":        "email",
}

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row interface{ Scan(dest ...any) error }) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.CompanyName, &s.VATNumber, &s.TaxCode, &s.Address, &s.Phone,
		&s.Email, &s.CertifiedEmail, &s.Website, &s.Notes)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) (int64, error) {
	query := `
		INSERT INTO suppliers (company_name, vat_number, tax_code, address, phone, email, certified_email, website, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.CompanyName, s.VATNumber, s.TaxCode, s.Address, s.Phone, s.Email, s.CertifiedEmail, s.Website, s.Notes,
	).Scan(&s.ID)
	if err != nil {
		return 0, mapError("insert supplier", err)
	}
	return s.ID, nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get supplier", err)
	}
	return s, nil
}

// Update actualiza todos los campos del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET company_name = $2, vat_number = $3, tax_code = $4, address = $5, phone = $6,
		    email = $7, certified_email = $8, website = $9, notes = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyName, s.VATNumber, s.TaxCode, s.Address, s.Phone, s.Email, s.CertifiedEmail, s.Website, s.Notes,
	)
	return expectOne("update supplier", cmd, err)
}

// Delete elimina un proveedor. Falla si tiene pedidos a proveedor.
func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	return expectOne("delete supplier", cmd, err)
}

// List lista proveedores.
func (r *SupplierRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Supplier, error) {
	var w whereBuilder
	w.search(f.Search, "company_name", "vat_number", "email")
	query := `SELECT ` + supplierColumns + ` FROM suppliers` + w.sql() + w.page(f, supplierSortable, "id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list suppliers", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, mapError("scan supplier", err)
		}
		list = append(list, s)
	}
	return list, mapError("list suppliers", rows.Err())
}
