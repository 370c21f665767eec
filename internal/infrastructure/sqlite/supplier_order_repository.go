package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.SupplierOrderRepository = (*SupplierOrderRepo)(nil)

var supplierOrderSortable = map[string]string{
	"id":         "so.id",
	"supplier":   "s.company_name",
	"order_date": "so.order_date",
	"status":     "so.status",
	"total":      "CAST(so.total AS REAL)",
}

// SupplierOrderRepo pedidos a proveedor sobre SQLite.
type SupplierOrderRepo struct {
	db *gorm.DB
}

func (r *SupplierOrderRepo) headers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("supplier_orders so").
		Select("so.id, so.supplier_id, so.order_date, so.status, so.total, so.notes, COALESCE(s.company_name, '') AS supplier_name").
		Joins("LEFT JOIN suppliers s ON s.id = so.supplier_id")
}

func insertSupplierOrderItems(tx *gorm.DB, orderID int64, items []entity.SupplierOrderItem) ([]int64, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]supplierOrderItemRow, len(items))
	for k, it := range items {
		rows[k] = supplierOrderItemRow{
			SupplierOrderID: orderID, ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Total: it.Total,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, mapError("insert supplier order item", err)
	}
	ids := make([]int64, len(rows))
	for k := range rows {
		ids[k] = rows[k].ID
	}
	return ids, nil
}

func setSupplierOrderIDs(o *entity.SupplierOrder, id int64, itemIDs []int64) {
	o.ID = id
	for k := range o.Items {
		o.Items[k].ID = itemIDs[k]
		o.Items[k].SupplierOrderID = id
	}
}

func (r *SupplierOrderRepo) Create(ctx context.Context, o *entity.SupplierOrder) (int64, error) {
	var (
		id      int64
		itemIDs []int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := supplierOrderRow{SupplierID: o.SupplierID, OrderDate: utc(o.OrderDate), Status: o.Status, Total: o.Total, Notes: o.Notes}
		if err := tx.Create(&row).Error; err != nil {
			return mapError("insert supplier order", err)
		}
		ids, err := insertSupplierOrderItems(tx, row.ID, o.Items)
		if err != nil {
			return err
		}
		id, itemIDs = row.ID, ids
		return nil
	})
	if err != nil {
		return 0, err
	}
	setSupplierOrderIDs(o, id, itemIDs)
	return id, nil
}

func (r *SupplierOrderRepo) GetByID(ctx context.Context, id int64) (*entity.SupplierOrder, error) {
	var row supplierOrderRow
	if err := r.headers(ctx).Where("so.id = ?", id).Take(&row).Error; err != nil {
		return nil, mapError("get supplier order", err)
	}
	o := row.entity()
	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *SupplierOrderRepo) Update(ctx context.Context, o *entity.SupplierOrder) error {
	var itemIDs []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&supplierOrderRow{}).Where("id = ?", o.ID).Updates(map[string]any{
			"supplier_id": o.SupplierID,
			"order_date":  utc(o.OrderDate),
			"status":      o.Status,
			"total":       o.Total,
			"notes":       o.Notes,
		})
		if err := expectOne("update supplier order", res); err != nil {
			return err
		}
		if err := tx.Where("supplier_order_id = ?", o.ID).Delete(&supplierOrderItemRow{}).Error; err != nil {
			return mapError("delete supplier order items", err)
		}
		ids, err := insertSupplierOrderItems(tx, o.ID, o.Items)
		itemIDs = ids
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
	res := r.db.WithContext(ctx).Model(&supplierOrderRow{}).Where("id = ?", id).Update("status", status)
	return expectOne("update supplier order status", res)
}

func (r *SupplierOrderRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete supplier order", r.db.WithContext(ctx).Where("id = ?", id).Delete(&supplierOrderRow{}))
}

func (r *SupplierOrderRepo) List(ctx context.Context, f repository.SupplierOrderFilter) ([]*entity.SupplierOrder, error) {
	q := r.headers(ctx)
	if f.SupplierID != nil {
		q = q.Where("so.supplier_id = ?", *f.SupplierID)
	}
	if f.Status != "" {
		q = q.Where("so.status = ?", f.Status)
	}
	q = search(q, f.Search, "s.company_name", "so.notes")
	var rows []supplierOrderRow
	if err := page(q, f.ListFilter, supplierOrderSortable, "so.id").Find(&rows).Error; err != nil {
		return nil, mapError("list supplier orders", err)
	}
	out := make([]*entity.SupplierOrder, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}

func (r *SupplierOrderRepo) ListItems(ctx context.Context, orderID int64) ([]entity.SupplierOrderItem, error) {
	var rows []supplierOrderItemRow
	err := r.db.WithContext(ctx).Table("supplier_order_items soi").
		Select(`soi.id, soi.supplier_order_id, soi.product_id, soi.quantity, soi.unit_price, soi.total,
			p.code AS product_code, p.name AS product_name`).
		Joins("JOIN products p ON p.id = soi.product_id").
		Where("soi.supplier_order_id = ?", orderID).
		Order("soi.id").
		Find(&rows).Error
	if err != nil {
		return nil, mapError("list supplier order items", err)
	}
	items := make([]entity.SupplierOrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.entity())
	}
	return items, nil
}
