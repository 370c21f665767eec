package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.SupplierOrderRepository = (*SupplierOrderRepo)(nil)

const supplierOrderSelect = `
	SELECT so.id, so.supplier_id, COALESCE(s.company_name, ''), so.order_date, so.status, so.total, so.notes
	FROM supplier_orders so LEFT JOIN suppliers s ON s.id = so.supplier_id`

var supplierOrderSortable = map[string]string{
	"id":         "so.id",
	"supplier":   "s.company_name",
	"order_date": "so.order_date",
	"status":     "so.status",
	"total":      "so.total",
}

// SupplierOrderRepo implementación de SupplierOrderRepository sobre PostgreSQL.
type SupplierOrderRepo struct {
	q Querier
}

// NewSupplierOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierOrderRepository(q Querier) *SupplierOrderRepo {
	return &SupplierOrderRepo{q: q}
}

func scanSupplierOrder(row interface{ Scan(dest ...any) error }) (*entity.SupplierOrder, error) {
	var o entity.SupplierOrder
	if err := row.Scan(&o.ID, &o.SupplierID, &o.SupplierName, &o.OrderDate, &o.Status, &o.Total, &o.Notes); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste cabecera y líneas en una sola transacción.
func (r *SupplierOrderRepo) Create(ctx context.Context, o *entity.SupplierOrder) (int64, error) {
	var id int64
	var itemIDs []int64
	err := withTx(ctx, r.q, func(tx Querier) error {
		query := `
			INSERT INTO supplier_orders (supplier_id, order_date, status, total, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		if err := tx.QueryRow(ctx, query, o.SupplierID, o.OrderDate, o.Status, o.Total, o.Notes).Scan(&id); err != nil {
			return mapError("insert supplier order", err)
		}
		var err error
		itemIDs, err = insertSupplierOrderItems(ctx, tx, id, o.Items)
		return err
	})
	if err != nil {
		return 0, err
	}
	setSupplierOrderIDs(o, id, itemIDs)
	return id, nil
}

func insertSupplierOrderItems(ctx context.Context, tx Querier, orderID int64, items []entity.SupplierOrderItem) ([]int64, error) {
	query := `
		INSERT INTO supplier_order_items (supplier_order_id, product_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	ids := make([]int64, len(items))
	for k, it := range items {
		if err := tx.QueryRow(ctx, query, orderID, it.ProductID, it.Quantity, it.UnitPrice, it.Total).Scan(&ids[k]); err != nil {
			return nil, mapError("insert supplier order item", err)
		}
	}
	return ids, nil
}

func setSupplierOrderIDs(o *entity.SupplierOrder, id int64, itemIDs []int64) {
	o.ID = id
	for k := range o.Items {
		o.Items[k].SupplierOrderID = id
		o.Items[k].ID = itemIDs[k]
	}
}

// GetByID obtiene el pedido a proveedor con sus líneas.
func (r *SupplierOrderRepo) GetByID(ctx context.Context, id int64) (*entity.SupplierOrder, error) {
	o, err := scanSupplierOrder(r.q.QueryRow(ctx, supplierOrderSelect+` WHERE so.id = $1`, id))
	if err != nil {
		return nil, mapError("get supplier order", err)
	}
	o.Items, err = r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Update reemplaza cabecera y líneas.
func (r *SupplierOrderRepo) Update(ctx context.Context, o *entity.SupplierOrder) error {
	var itemIDs []int64
	err := withTx(ctx, r.q, func(tx Querier) error {
		cmd, err := tx.Exec(ctx,
			`UPDATE supplier_orders SET supplier_id = $2, order_date = $3, status = $4, total = $5, notes = $6 WHERE id = $1`,
			o.ID, o.SupplierID, o.OrderDate, o.Status, o.Total, o.Notes,
		)
		if err := expectOne("update supplier order", cmd, err); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM supplier_order_items WHERE supplier_order_id = $1`, o.ID); err != nil {
			return mapError("delete supplier order items", err)
		}
		itemIDs, err = insertSupplierOrderItems(ctx, tx, o.ID, o.Items)
		return err
	})
	if err != nil {
		return err
	}
	setSupplierOrderIDs(o, o.ID, itemIDs)
	return nil
}

// UpdateStatus cambia solo el estado de la cabecera.
func (r *SupplierOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE supplier_orders SET status = $2 WHERE id = $1`, id, status)
	return expectOne("update supplier order status", cmd, err)
}

// Delete elimina el pedido y sus líneas.
func (r *SupplierOrderRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.q, func(tx Querier) error {
		if _, err := tx.Exec(ctx, `DELETE FROM supplier_order_items WHERE supplier_order_id = $1`, id); err != nil {
			return mapError("delete supplier order items", err)
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM supplier_orders WHERE id = $1`, id)
		return expectOne("delete supplier order", cmd, err)
	})
}

func (r *SupplierOrderRepo) List(ctx context.Context, f repository.SupplierOrderFilter) ([]*entity.SupplierOrder, error) {
	var w whereBuilder
	if f.SupplierID != nil {
		w.add("so.supplier_id = ?", *f.SupplierID)
	}
	if f.Status != "" {
		w.add("so.status = ?", f.Status)
	}
	w.search(f.Search, "s.company_name", "so.notes")
	query := supplierOrderSelect + w.sql() + w.page(f.ListFilter, supplierOrderSortable, "so.id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list supplier orders", err)
	}
	defer rows.Close()
	var list []*entity.SupplierOrder
	for rows.Next() {
		o, err := scanSupplierOrder(rows)
		if err != nil {
			return nil, mapError("scan supplier order", err)
		}
		list = append(list, o)
	}
	return list, mapError("list supplier orders", rows.Err())
}

func (r *SupplierOrderRepo) ListItems(ctx context.Context, orderID int64) ([]entity.SupplierOrderItem, error) {
	query := `
		SELECT i.id, i.supplier_order_id, i.product_id, COALESCE(p.code, ''), COALESCE(p.name, ''),
		       i.quantity, i.unit_price, i.total
		FROM supplier_order_items i LEFT JOIN products p ON p.id = i.product_id
		WHERE i.supplier_order_id = $1 ORDER BY i.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, mapError("list supplier order items", err)
	}
	defer rows.Close()
	items := []entity.SupplierOrderItem{}
	for rows.Next() {
		var it entity.SupplierOrderItem
		err := rows.Scan(&it.ID, &it.SupplierOrderID, &it.ProductID, &it.ProductCode, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Total)
		if err != nil {
			return nil, mapError("scan supplier order item", err)
		}
		items = append(items, it)
	}
	return items, mapError("list supplier order items", rows.Err())
}
