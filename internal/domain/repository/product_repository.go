package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByCode devuelve el primer producto con ese código (ErrNotFound si no hay).
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, id int64, active bool) error
	// AdjustQuantity suma delta al stock y devuelve la cantidad resultante.
	AdjustQuantity(ctx context.Context, id int64, delta int) (int, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
}
