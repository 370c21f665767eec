package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.Customer, error)
}
