package repository

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// PriceListRepository define el puerto de persistencia para SupplierPriceList.
type PriceListRepository interface {
	Create(ctx context.Context, price *entity.SupplierPriceList) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.SupplierPriceList, error)
	Update(ctx context.Context, price *entity.SupplierPriceList) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f PriceListFilter) ([]*entity.SupplierPriceList, error)
}
