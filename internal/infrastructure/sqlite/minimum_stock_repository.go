package sqlite

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.MinimumStockRepository = (*MinimumStockRepo)(nil)

var minimumStockSortable = map[string]string{
	"product":   "product_id",
	"minimum":   "minimum_quantity",
	"reorder":   "reorder_quantity",
	"lead_time": "lead_time_days",
}

// MinimumStockRepo parámetros de reposición por producto sobre SQLite.
type MinimumStockRepo struct {
	db *gorm.DB
}

// Upsert inserta o reemplaza los parámetros de reposición del producto.
func (r *MinimumStockRepo) Upsert(ctx context.Context, ms *entity.MinimumStock) error {
	row := minimumStockRow{
		ProductID: ms.ProductID, MinimumQuantity: ms.MinimumQuantity, ReorderQuantity: ms.ReorderQuantity,
		LeadTimeDays: ms.LeadTimeDays, PreferredSupplier: ms.PreferredSupplier, Notes: ms.Notes,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "product_id"}}, UpdateAll: true}).
		Create(&row).Error
	return mapError("upsert minimum stock", err)
}

func (r *MinimumStockRepo) Get(ctx context.Context, productID int64) (*entity.MinimumStock, error) {
	var row minimumStockRow
	if err := r.db.WithContext(ctx).Take(&row, "product_id = ?", productID).Error; err != nil {
		return nil, mapError("get minimum stock", err)
	}
	return row.entity(), nil
}

func (r *MinimumStockRepo) Delete(ctx context.Context, productID int64) error {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&minimumStockRow{})
	return expectOne("delete minimum stock", res)
}

func (r *MinimumStockRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.MinimumStock, error) {
	q := search(r.db.WithContext(ctx).Model(&minimumStockRow{}), f.Search, "notes")
	var rows []minimumStockRow
	if err := page(q, f, minimumStockSortable, "product_id").Find(&rows).Error; err != nil {
		return nil, mapError("list minimum stock", err)
	}
	out := make([]*entity.MinimumStock, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}
