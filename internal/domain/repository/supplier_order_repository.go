package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// SupplierOrderRepository define el puerto de persistencia para pedidos a proveedor.
type SupplierOrderRepository interface {
	Create(ctx context.Context, order *entity.SupplierOrder) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.SupplierOrder, error)
	Update(ctx context.Context, order *entity.SupplierOrder) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f SupplierOrderFilter) ([]*entity.SupplierOrder, error)
	ListItems(ctx context.Context, orderID int64) ([]entity.SupplierOrderItem, error)
}
