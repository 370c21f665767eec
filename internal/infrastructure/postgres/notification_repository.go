package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, product_id, date, type, message, status`

var notificationSortable = map[string]string{
	"id":      "id",
	"date":    "date",
	"product": "product_id",
	"type":    "type",
	"status":  "status",
}

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func scanNotification(row interface{ Scan(dest ...any) error }) (*entity.WarehouseNotification, error) {
	var n entity.WarehouseNotification
	if err := row.Scan(&n.ID, &n.ProductID, &n.Date, &n.Type, &n.Message, &n.Status); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.WarehouseNotification) (int64, error) {
	query := `
		INSERT INTO warehouse_notifications (product_id, date, type, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, n.ProductID, n.Date, n.Type, n.Message, n.Status).Scan(&n.ID); err != nil {
		return 0, mapError("create notification", err)
	}
	return n.ID, nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (*entity.WarehouseNotification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM warehouse_notifications WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get notification", err)
	}
	return n, nil
}

func (r *NotificationRepo) Update(ctx context.Context, n *entity.WarehouseNotification) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouse_notifications SET product_id = $2, date = $3, type = $4, message = $5, status = $6 WHERE id = $1`,
		n.ID, n.ProductID, n.Date, n.Type, n.Message, n.Status,
	)
	return expectOne("update notification", cmd, err)
}

func (r *NotificationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE warehouse_notifications SET status = $2 WHERE id = $1`, id, status)
	return expectOne("update notification status", cmd, err)
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM warehouse_notifications WHERE id = $1`, id)
	return expectOne("delete notification", cmd, err)
}

func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter) ([]*entity.WarehouseNotification, error) {
	var w whereBuilder
	if f.ProductID != nil {
		w.add("product_id = ?", *f.ProductID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	w.search(f.Search, "message")
	query := `SELECT ` + notificationColumns + ` FROM warehouse_notifications` + w.sql() + w.page(f.ListFilter, notificationSortable, "id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list notifications", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, mapError("scan notification", err)
		}
		list = append(list, n)
	}
	return list, mapError("list notifications", rows.Err())
}

// HasOpen usa el índice parcial de notificaciones abiertas.
func (r *NotificationRepo) HasOpen(ctx context.Context, productID int64, notificationType string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM warehouse_notifications
			WHERE product_id = $1 AND type = $2 AND status <> 'RESOLVED'
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, productID, notificationType).Scan(&ok); err != nil {
		return false, mapError("has open notification", err)
	}
	return ok, nil
}
