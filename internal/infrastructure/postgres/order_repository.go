package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.customer_id, COALESCE(c.first_name || ' ' || c.last_name, ''), o.order_date, o.status, o.total
	FROM orders o LEFT JOIN customers c ON c.id = o.customer_id`

var orderSortable = map[string]string{
	"id":         "o.id",
	"customer":   "c.last_name",
	"order_date": "o.order_date",
	"status":     "o.status",
	"total":      "o.total",
}

// OrderRepo implementación de OrderRepository (cabecera + líneas) sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.OrderDate, &o.Status, &o.Total); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste cabecera y líneas en una sola transacción.
// Los IDs se copian en o solo tras el commit.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) (int64, error) {
	var id int64
	var itemIDs []int64
	err := withTx(ctx, r.q, func(tx Querier) error {
		query := `
			INSERT INTO orders (customer_id, order_date, status, total)
			VALUES ($1, $2, $3, $4)
			RETURNING id`
		if err := tx.QueryRow(ctx, query, o.CustomerID, o.OrderDate, o.Status, o.Total).Scan(&id); err != nil {
			return mapError("insert order", err)
		}
		var err error
		itemIDs, err = insertOrderItems(ctx, tx, id, o.Items)
		return err
	})
	if err != nil {
		return 0, err
	}
	setOrderIDs(o, id, itemIDs)
	return id, nil
}

func insertOrderItems(ctx context.Context, tx Querier, orderID int64, items []entity.OrderItem) ([]int64, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	ids := make([]int64, len(items))
	for k, it := range items {
		if err := tx.QueryRow(ctx, query, orderID, it.ProductID, it.Quantity, it.UnitPrice).Scan(&ids[k]); err != nil {
			return nil, mapError("insert order item", err)
		}
	}
	return ids, nil
}

func setOrderIDs(o *entity.Order, id int64, itemIDs []int64) {
	o.ID = id
	for k := range o.Items {
		o.Items[k].OrderID = id
		o.Items[k].ID = itemIDs[k]
	}
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, mapError("get order", err)
	}
	o.Items, err = r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Update reemplaza cabecera y líneas en una sola transacción.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	var itemIDs []int64
	err := withTx(ctx, r.q, func(tx Querier) error {
		cmd, err := tx.Exec(ctx,
			`UPDATE orders SET customer_id = $2, order_date = $3, status = $4, total = $5 WHERE id = $1`,
			o.ID, o.CustomerID, o.OrderDate, o.Status, o.Total,
		)
		if err := expectOne("update order", cmd, err); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
			return mapError("delete order items", err)
		}
		itemIDs, err = insertOrderItems(ctx, tx, o.ID, o.Items)
		return err
	})
	if err != nil {
		return err
	}
	setOrderIDs(o, o.ID, itemIDs)
	return nil
}

// Delete elimina el pedido y sus líneas en la misma transacción.
func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.q, func(tx Querier) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return mapError("delete order items", err)
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
		return expectOne("delete order", cmd, err)
	})
}

// List lista cabeceras de pedido (sin líneas).
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var w whereBuilder
	if f.CustomerID != nil {
		w.add("o.customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		w.add("o.status = ?", f.Status)
	}
	w.search(f.Search, "c.first_name", "c.last_name")
	query := orderSelect + w.sql() + w.page(f.ListFilter, orderSortable, "o.id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list orders", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, mapError("scan order", err)
		}
		list = append(list, o)
	}
	return list, mapError("list orders", rows.Err())
}

// ListItems obtiene las líneas de un pedido en orden de inserción.
func (r *OrderRepo) ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.unit_price
		FROM order_items i LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1 ORDER BY i.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, mapError("list order items", err)
	}
	defer rows.Close()
	items := []entity.OrderItem{}
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, mapError("scan order item", err)
		}
		items = append(items, it)
	}
	return items, mapError("list order items", rows.Err())
}
