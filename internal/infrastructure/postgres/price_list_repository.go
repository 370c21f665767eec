package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

const priceListColumns = `id, supplier_id, product_id, supplier_product_code, price, minimum_quantity,
	validity_start, validity_end, notes`

var priceListSortable = map[string]string{
	"id":             "id",
	"supplier":       "supplier_id",
	"product":        "product_id",
	"price":          "price",
	"validity_start": "validity_start",
	"validity_end":   "validity_end",
}

// PriceListRepo implementación de PriceListRepository sobre PostgreSQL.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

func scanPriceList(row interface{ Scan(dest ...any) error }) (*entity.SupplierPriceList, error) {
	var p entity.SupplierPriceList
	err := row.Scan(&p.ID, &p.SupplierID, &p.ProductID, &p.SupplierProductCode, &p.Price, &p.MinimumQuantity,
		&p.ValidityStart, &p.ValidityEnd, &p.Notes)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PriceListRepo) Create(ctx context.Context, p *entity.SupplierPriceList) (int64, error) {
	query := `
		INSERT INTO supplier_price_lists (supplier_id, product_id, supplier_product_code, price, minimum_quantity,
			validity_start, validity_end, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.SupplierID, p.ProductID, p.SupplierProductCode, p.Price, p.MinimumQuantity,
		p.ValidityStart, p.ValidityEnd, p.Notes,
	).Scan(&p.ID)
	if err != nil {
		return 0, mapError("insert price list", err)
	}
	return p.ID, nil
}

func (r *PriceListRepo) GetByID(ctx context.Context, id int64) (*entity.SupplierPriceList, error) {
	p, err := scanPriceList(r.q.QueryRow(ctx, `SELECT `+priceListColumns+` FROM supplier_price_lists WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get price list", err)
	}
	return p, nil
}

func (r *PriceListRepo) Update(ctx context.Context, p *entity.SupplierPriceList) error {
	query := `
		UPDATE supplier_price_lists
		SET supplier_id = $2, product_id = $3, supplier_product_code = $4, price = $5, minimum_quantity = $6,
			validity_start = $7, validity_end = $8, notes = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.SupplierID, p.ProductID, p.SupplierProductCode, p.Price, p.MinimumQuantity,
		p.ValidityStart, p.ValidityEnd, p.Notes,
	)
	return expectOne("update price list", cmd, err)
}

func (r *PriceListRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM supplier_price_lists WHERE id = $1`, id)
	return expectOne("delete price list", cmd, err)
}

// List lista precios; ValidOn filtra los vigentes en ese día.
func (r *PriceListRepo) List(ctx context.Context, f repository.PriceListFilter) ([]*entity.SupplierPriceList, error) {
	var w whereBuilder
	if f.SupplierID != nil {
		w.add("supplier_id = ?", *f.SupplierID)
	}
	if f.ProductID != nil {
		w.add("product_id = ?", *f.ProductID)
	}
	if f.ValidOn != nil {
		w.add("validity_start <= ?::date AND (validity_end IS NULL OR validity_end >= ?::date)", *f.ValidOn, *f.ValidOn)
	}
	w.search(f.Search, "supplier_product_code", "notes")
	query := `SELECT ` + priceListColumns + ` FROM supplier_price_lists` + w.sql() + w.page(f.ListFilter, priceListSortable, "id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list price lists", err)
	}
	defer rows.Close()
	var list []*entity.SupplierPriceList
	for rows.Next() {
		p, err := scanPriceList(rows)
		if err != nil {
			return nil, mapError("scan price list", err)
		}
		list = append(list, p)
	}
	return list, mapError("list price lists", rows.Err())
}
