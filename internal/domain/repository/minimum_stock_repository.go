package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// MinimumStockRepository define el puerto para los parámetros de reposición (clave = producto).
type MinimumStockRepository interface {
	// Upsert inserta o reemplaza la fila del producto.
	Upsert(ctx context.Context, ms *entity.MinimumStock) error
	Get(ctx context.Context, productID int64) (*entity.MinimumStock, error)
	Delete(ctx context.Context, productID int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.MinimumStock, error)
}
