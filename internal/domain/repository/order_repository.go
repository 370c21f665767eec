package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
// Create y Update escriben cabecera y líneas en una sola unidad atómica; Delete borra en cascada.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error)
}
