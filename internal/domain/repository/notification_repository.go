package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para notificaciones de almacén.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.WarehouseNotification) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.WarehouseNotification, error)
	Update(ctx context.Context, n *entity.WarehouseNotification) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f NotificationFilter) ([]*entity.WarehouseNotification, error)
	// HasOpen indica si existe una notificación no resuelta del tipo para el producto.
	HasOpen(ctx context.Context, productID int64, notificationType string) (bool, error)
}
