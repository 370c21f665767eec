package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

var notificationSortable = map[string]string{
	"id":      "id",
	"date":    "date",
	"product": "product_id",
	"type":    "type",
	"status":  "status",
}

// NotificationRepo avisos de almacén sobre SQLite.
type NotificationRepo struct {
	db *gorm.DB
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.WarehouseNotification) (int64, error) {
	row := newNotificationRow(n)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, mapError("insert notification", err)
	}
	n.ID = row.ID
	return row.ID, nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (*entity.WarehouseNotification, error) {
	var row notificationRow
	if err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error; err != nil {
		return nil, mapError("get notification", err)
	}
	return row.entity(), nil
}

func (r *NotificationRepo) Update(ctx context.Context, n *entity.WarehouseNotification) error {
	row := newNotificationRow(n)
	res := r.db.WithContext(ctx).Model(&notificationRow{}).Where("id = ?", n.ID).Updates(map[string]any{
		"product_id": row.ProductID,
		"date":       row.Date,
		"type":       row.Type,
		"message":    row.Message,
		"status":     row.Status,
	})
	return expectOne("update notification", res)
}

func (r *NotificationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&notificationRow{}).Where("id = ?", id).Update("status", status)
	return expectOne("update notification status", res)
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete notification", r.db.WithContext(ctx).Where("id = ?", id).Delete(&notificationRow{}))
}

func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter) ([]*entity.WarehouseNotification, error) {
	q := r.db.WithContext(ctx).Model(&notificationRow{})
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = search(q, f.Search, "message")
	var rows []notificationRow
	if err := page(q, f.ListFilter, notificationSortable, "id").Find(&rows).Error; err != nil {
		return nil, mapError("list notifications", err)
	}
	out := make([]*entity.WarehouseNotification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}

// HasOpen indica si el producto tiene un aviso de ese tipo sin resolver (índice parcial).
func (r *NotificationRepo) HasOpen(ctx context.Context, productID int64, notificationType string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&notificationRow{}).
		Where("product_id = ? AND type = ? AND status <> ?", productID, notificationType, entity.NotificationStatusResolved).
		Count(&n).Error
	if err != nil {
		return false, mapError("has open notification", err)
	}
	return n > 0, nil
}
