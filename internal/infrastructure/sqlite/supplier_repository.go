package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

var supplierSortable = map[string]string{
	"id":           "id",
	"company_name": "company_name",
	"vat_number":   "vat_number",
	"email":        "email",
}

// SupplierRepo proveedores sobre SQLite.
type SupplierRepo struct {
	db *gorm.DB
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) (int64, error) {
	row := newSupplierRow(s)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, mapError("insert supplier", err)
	}
	s.ID = row.ID
	return row.ID, nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var row supplierRow
	if err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error; err != nil {
		return nil, mapError("get supplier", err)
	}
	return row.entity(), nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	res := r.db.WithContext(ctx).Model(&supplierRow{}).Where("id = ?", s.ID).Updates(map[string]any{
		"company_name":    s.CompanyName,
		"vat_number":      s.VATNumber,
		"tax_code":        s.TaxCode,
		"address":         s.Address,
		"phone":           s.Phone,
		"email":           s.Email,
		"certified_email": s.CertifiedEmail,
		"website":         s.Website,
		"notes":           s.Notes,
	})
	return expectOne("update supplier", res)
}

// Delete deja sin proveedor a productos y mínimos, borra sus listas de precios y
// falla si tiene pedidos de compra.
func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete supplier", r.db.WithContext(ctx).Where("id = ?", id).Delete(&supplierRow{}))
}

func (r *SupplierRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Supplier, error) {
	q := search(r.db.WithContext(ctx).Model(&supplierRow{}), f.Search, "company_name", "vat_number", "email")
	var rows []supplierRow
	if err := page(q, f, supplierSortable, "id").Find(&rows).Error; err != nil {
		return nil, mapError("list suppliers", err)
	}
	out := make([]*entity.Supplier, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}
