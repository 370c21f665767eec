package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.MinimumStockRepository = (*MinimumStockRepo)(nil)

const minimumStockColumns = `product_id, minimum_quantity, reorder_quantity, lead_time_days, preferred_supplier, notes`

var minimumStockSortable = map[string]string{
	"product":   "product_id",
	"minimum":   "minimum_quantity",
	"reorder":   "reorder_quantity",
	"lead_time": "lead_time_days",
}

// MinimumStockRepo implementación de MinimumStockRepository sobre PostgreSQL.
type MinimumStockRepo struct {
	q Querier
}

// NewMinimumStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMinimumStockRepository(q Querier) *MinimumStockRepo {
	return &MinimumStockRepo{q: q}
}

func scanMinimumStock(row interface{ Scan(dest ...any) error }) (*entity.MinimumStock, error) {
	var ms entity.MinimumStock
	err := row.Scan(&ms.ProductID, &ms.MinimumQuantity, &ms.ReorderQuantity, &ms.LeadTimeDays, &ms.PreferredSupplier, &ms.Notes)
	if err != nil {
		return nil, err
	}
	return &ms, nil
}

// Upsert inserta o reemplaza los parámetros de reposición del producto.
func (r *MinimumStockRepo) Upsert(ctx context.Context, ms *entity.MinimumStock) error {
	query := `
		INSERT INTO minimum_stock (product_id, minimum_quantity, reorder_quantity, lead_time_days, preferred_supplier, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET minimum_quantity = EXCLUDED.minimum_quantity,
			reorder_quantity = EXCLUDED.reorder_quantity,
			lead_time_days = EXCLUDED.lead_time_days,
			preferred_supplier = EXCLUDED.preferred_supplier,
			notes = EXCLUDED.notes`
	_, err := r.q.Exec(ctx, query,
		ms.ProductID, ms.MinimumQuantity, ms.ReorderQuantity, ms.LeadTimeDays, ms.PreferredSupplier, ms.Notes,
	)
	return mapError("upsert minimum stock", err)
}

func (r *MinimumStockRepo) Get(ctx context.Context, productID int64) (*entity.MinimumStock, error) {
	ms, err := scanMinimumStock(r.q.QueryRow(ctx,
		`SELECT `+minimumStockColumns+` FROM minimum_stock WHERE product_id = $1`, productID))
	if err != nil {
		return nil, mapError("get minimum stock", err)
	}
	return ms, nil
}

func (r *MinimumStockRepo) Delete(ctx context.Context, productID int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM minimum_stock WHERE product_id = $1`, productID)
	return expectOne("delete minimum stock", cmd, err)
}

func (r *MinimumStockRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.MinimumStock, error) {
	var w whereBuilder
	w.search(f.Search, "notes")
	query := `SELECT ` + minimumStockColumns + ` FROM minimum_stock` + w.sql() + w.page(f, minimumStockSortable, "product_id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list minimum stock", err)
	}
	defer rows.Close()
	var list []*entity.MinimumStock
	for rows.Next() {
		ms, err := scanMinimumStock(rows)
		if err != nil {
			return nil, mapError("scan minimum stock", err)
		}
		list = append(list, ms)
	}
	return list, mapError("list minimum stock", rows.Err())
}
