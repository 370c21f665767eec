package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// WarehouseMovementRepository define el puerto de persistencia para movimientos de almacén.
// No toca el stock: el ajuste lo hace el caso de uso dentro de la misma transacción.
type WarehouseMovementRepository interface {
	Create(ctx context.Context, movement *entity.WarehouseMovement) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.WarehouseMovement, error)
	Update(ctx context.Context, movement *entity.WarehouseMovement) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f MovementFilter) ([]*entity.WarehouseMovement, error)
}
