package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderSortable = map[string]string{
	"id":         "o.id",
	"customer":   "c.last_name",
	"order_date": "o.order_date",
	"status":     "o.status",
	"total":      "CAST(o.total AS REAL)",
}

const orderColumns = `o.id, o.customer_id, o.order_date, o.status, o.total,
	c.first_name || ' ' || c.last_name AS customer_name`

// OrderRepo pedidos de cliente (cabecera + líneas) sobre SQLite.
type OrderRepo struct {
	db *gorm.DB
}

func (r *OrderRepo) headers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("orders o").
		Select(orderColumns).
		Joins("JOIN customers c ON c.id = o.customer_id")
}

// insertOrderItems inserta las líneas y devuelve sus IDs en el mismo orden.
func insertOrderItems(tx *gorm.DB, orderID int64, items []entity.OrderItem) ([]int64, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]orderItemRow, len(items))
	for k, it := range items {
		rows[k] = orderItemRow{OrderID: orderID, ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, mapError("insert order item", err)
	}
	ids := make([]int64, len(rows))
	for k := range rows {
		ids[k] = rows[k].ID
	}
	return ids, nil
}

// setOrderIDs copia los IDs en la entidad una vez confirmada la escritura.
func setOrderIDs(o *entity.Order, id int64, itemIDs []int64) {
	o.ID = id
	for k := range o.Items {
		o.Items[k].ID = itemIDs[k]
		o.Items[k].OrderID = id
	}
}

// Create inserta cabecera y líneas en la misma transacción (savepoint si ya hay una).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) (int64, error) {
	var (
		id      int64
		itemIDs []int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := orderRow{CustomerID: o.CustomerID, OrderDate: utc(o.OrderDate), Status: o.Status, Total: o.Total}
		if err := tx.Create(&row).Error; err != nil {
			return mapError("insert order", err)
		}
		ids, err := insertOrderItems(tx, row.ID, o.Items)
		if err != nil {
			return err
		}
		id, itemIDs = row.ID, ids
		return nil
	})
	if err != nil {
		return 0, err
	}
	setOrderIDs(o, id, itemIDs)
	return id, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var row orderRow
	if err := r.headers(ctx).Where("o.id = ?", id).Take(&row).Error; err != nil {
		return nil, mapError("get order", err)
	}
	o := row.entity()
	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// Update reemplaza cabecera y líneas.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	var itemIDs []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&orderRow{}).Where("id = ?", o.ID).Updates(map[string]any{
			"customer_id": o.CustomerID,
			"order_date":  utc(o.OrderDate),
			"status":      o.Status,
			"total":       o.Total,
		})
		if err := expectOne("update order", res); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", o.ID).Delete(&orderItemRow{}).Error; err != nil {
			return mapError("delete order items", err)
		}
		ids, err := insertOrderItems(tx, o.ID, o.Items)
		itemIDs = ids
		return err
	})
	if err != nil {
		return err
	}
	setOrderIDs(o, o.ID, itemIDs)
	return nil
}

// Delete elimina el pedido; las líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete order", r.db.WithContext(ctx).Where("id = ?", id).Delete(&orderRow{}))
}

// List lista cabeceras de pedido (sin líneas).
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	q := r.headers(ctx)
	if f.CustomerID != nil {
		q = q.Where("o.customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("o.status = ?", f.Status)
	}
	q = search(q, f.Search, "c.first_name", "c.last_name")
	var rows []orderRow
	if err := page(q, f.ListFilter, orderSortable, "o.id").Find(&rows).Error; err != nil {
		return nil, mapError("list orders", err)
	}
	out := make([]*entity.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}

func (r *OrderRepo) ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	var rows []orderItemRow
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select("oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, p.name AS product_name").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id").
		Find(&rows).Error
	if err != nil {
		return nil, mapError("list order items", err)
	}
	items := make([]entity.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.entity())
	}
	return items, nil
}
