package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productSortable = map[string]string{
	"id":       "id",
	"code":     "code",
	"name":     "name",
	"price":    "CAST(price AS REAL)",
	"quantity": "quantity",
	"category": "category",
	"position": "warehouse_position",
	"vat_rate": "CAST(vat_rate AS REAL)",
	"supplier": "supplier_id",
	"active":   "active",
	"min_qty":  "minimum_quantity",
	"cost":     "CAST(acquisition_cost AS REAL)",
	"unit":     "unit_of_measure",
}

// ProductRepo productos sobre SQLite.
type ProductRepo struct {
	db *gorm.DB
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	row := newProductRow(p)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, mapError("insert product", err)
	}
	p.ID = row.ID
	return row.ID, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error; err != nil {
		return nil, mapError("get product", err)
	}
	return row.entity(), nil
}

// GetByCode devuelve el producto más antiguo con ese código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).Where("code = ?", code).Order("id").Take(&row).Error; err != nil {
		return nil, mapError("get product by code", err)
	}
	return row.entity(), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&productRow{}).Where("id = ?", p.ID).Updates(newProductRow(p).updates())
	return expectOne("update product", res)
}

func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&productRow{}).Where("id = ?", id).Update("active", active)
	return expectOne("set product active", res)
}

// AdjustQuantity suma delta al stock. La CHECK (quantity >= 0) rechaza stock negativo.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&productRow{}).Where("id = ?", id).Update("quantity", gorm.Expr("quantity + ?", delta))
	if err := expectOne("adjust product quantity", res); err != nil {
		return 0, err
	}
	var qty int
	if err := db.Model(&productRow{}).Select("quantity").Where("id = ?", id).Row().Scan(&qty); err != nil {
		return 0, mapError("adjust product quantity", err)
	}
	return qty, nil
}

// Delete elimina físicamente un producto. Falla si está referenciado por documentos o movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete product", r.db.WithContext(ctx).Where("id = ?", id).Delete(&productRow{}))
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	q := r.db.WithContext(ctx).Model(&productRow{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.SupplierID != nil {
		q = q.Where("supplier_id = ?", *f.SupplierID)
	}
	q = search(q, f.Search, "code", "name", "alternative_sku")
	var rows []productRow
	if err := page(q, f.ListFilter, productSortable, "id").Find(&rows).Error; err != nil {
		return nil, mapError("list products", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}
