package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, description, price, quantity, category, alternative_sku, weight,
	unit_of_measure, minimum_quantity, acquisition_cost, active, supplier_id, warehouse_position, vat_rate`

var productSortable = map[string]string{
	"id":         "id",
	"code":       "code",
	"name":       "name",
	"price":      "price",
	"quantity":   "quantity",
	"category":   "category",
	"position":   "warehouse_position",
	"vat_rate":   "vat_rate",
	"supplier":   "supplier_id",
	"active":     "active",
	"min_qty":    "minimum_quantity",
	"cost":       "acquisition_cost",
	"unit":       "unit_of_measure",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row interface{ Scan(dest ...any) error }) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category,
		&p.AlternativeSKU, &p.Weight, &p.UnitOfMeasure, &p.MinimumQuantity, &p.AcquisitionCost,
		&p.Active, &p.SupplierID, &p.WarehousePosition, &p.VATRate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	query := `
		INSERT INTO products (code, name, description, price, quantity, category, alternative_sku, weight,
			unit_of_measure, minimum_quantity, acquisition_cost, active, supplier_id, warehouse_position, vat_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Code, p.Name, p.Description, p.Price, p.Quantity, p.Category, p.AlternativeSKU, p.Weight,
		p.UnitOfMeasure, p.MinimumQuantity, p.AcquisitionCost, p.Active, p.SupplierID, p.WarehousePosition, p.VATRate,
	).Scan(&p.ID)
	if err != nil {
		return 0, mapError("insert product", err)
	}
	return p.ID, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get product", err)
	}
	return p, nil
}

// GetByCode obtiene el producto más antiguo con ese código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1 ORDER BY id LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, code))
	if err != nil {
		return nil, mapError("get product by code", err)
	}
	return p, nil
}

// Update actualiza todos los campos del producto, incluido el stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET code = $2, name = $3, description = $4, price = $5, quantity = $6, category = $7,
		    alternative_sku = $8, weight = $9, unit_of_measure = $10, minimum_quantity = $11,
		    acquisition_cost = $12, active = $13, supplier_id = $14, warehouse_position = $15, vat_rate = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.Description, p.Price, p.Quantity, p.Category, p.AlternativeSKU, p.Weight,
		p.UnitOfMeasure, p.MinimumQuantity, p.AcquisitionCost, p.Active, p.SupplierID, p.WarehousePosition, p.VATRate,
	)
	return expectOne("update product", cmd, err)
}

// SetActive activa o desactiva (borrado lógico) un producto.
func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET active = $2 WHERE id = $1`, id, active)
	return expectOne("set product active", cmd, err)
}

// AdjustQuantity suma delta al stock. La CHECK (quantity >= 0) rechaza stock negativo.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx,
		`UPDATE products SET quantity = quantity + $2 WHERE id = $1 RETURNING quantity`,
		id, delta,
	).Scan(&qty)
	if err != nil {
		return 0, mapError("adjust product quantity", err)
	}
	return qty, nil
}

// Delete elimina físicamente un producto. Falla si está referenciado por documentos o movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return expectOne("delete product", cmd, err)
}

// List lista productos con filtros y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var w whereBuilder
	if f.ActiveOnly {
		w.add("active = TRUE")
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.SupplierID != nil {
		w.add("supplier_id = ?", *f.SupplierID)
	}
	w.search(f.Search, "code", "name", "alternative_sku")
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + w.page(f.ListFilter, productSortable, "id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		list = append(list, p)
	}
	return list, mapError("list products", rows.Err())
}
