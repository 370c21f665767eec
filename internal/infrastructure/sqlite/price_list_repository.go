package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

var priceListSortable = map[string]string{
	"id":             "id",
	"supplier":       "supplier_id",
	"product":        "product_id",
	"price":          "CAST(price AS REAL)",
	"validity_start": "validity_start",
	"validity_end":   "validity_end",
}

// PriceListRepo listas de precios de proveedor sobre SQLite.
type PriceListRepo struct {
	db *gorm.DB
}

func (r *PriceListRepo) Create(ctx context.Context, p *entity.SupplierPriceList) (int64, error) {
	row := newPriceListRow(p)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, mapError("insert price list", err)
	}
	p.ID = row.ID
	return row.ID, nil
}

func (r *PriceListRepo) GetByID(ctx context.Context, id int64) (*entity.SupplierPriceList, error) {
	var row priceListRow
	if err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error; err != nil {
		return nil, mapError("get price list", err)
	}
	return row.entity(), nil
}

func (r *PriceListRepo) Update(ctx context.Context, p *entity.SupplierPriceList) error {
	row := newPriceListRow(p)
	res := r.db.WithContext(ctx).Model(&priceListRow{}).Where("id = ?", p.ID).Updates(map[string]any{
		"supplier_id":           row.SupplierID,
		"product_id":            row.ProductID,
		"supplier_product_code": row.SupplierProductCode,
		"price":                 row.Price,
		"minimum_quantity":      row.MinimumQuantity,
		"validity_start":        row.ValidityStart,
		"validity_end":          row.ValidityEnd,
		"notes":                 row.Notes,
	})
	return expectOne("update price list", res)
}

func (r *PriceListRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete price list", r.db.WithContext(ctx).Where("id = ?", id).Delete(&priceListRow{}))
}

// List lista precios; ValidOn filtra los vigentes en ese día (extremos incluidos).
func (r *PriceListRepo) List(ctx context.Context, f repository.PriceListFilter) ([]*entity.SupplierPriceList, error) {
	q := r.db.WithContext(ctx).Model(&priceListRow{})
	if f.SupplierID != nil {
		q = q.Where("supplier_id = ?", *f.SupplierID)
	}
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.ValidOn != nil {
		d := day(*f.ValidOn)
		q = q.Where("substr(validity_start, 1, 10) <= ? AND (validity_end IS NULL OR substr(validity_end, 1, 10) >= ?)", d, d)
	}
	q = search(q, f.Search, "supplier_product_code", "notes")
	var rows []priceListRow
	if err := page(q, f.ListFilter, priceListSortable, "id").Find(&rows).Error; err != nil {
		return nil, mapError("list price lists", err)
	}
	out := make([]*entity.SupplierPriceList, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}
