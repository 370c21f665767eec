package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición a partir de los productos en o bajo su mínimo.
type ReplenishmentUseCase struct {
	repos repository.Repositories
	now   func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repos repository.Repositories) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repos: repos, now: time.Now}
}

// GenerateReplenishmentList devuelve los productos con mayor déficit primero, con la cantidad sugerida,
// el proveedor preferido y su mejor precio vigente hoy. Sin proveedor preferido se propone
// el que ofrezca el mejor precio vigente.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentItemDTO, error) {
	items, err := uc.repos.Analytics.ProductsBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	today := uc.now()
	out := make([]dto.ReplenishmentItemDTO, 0, len(items))
	for _, it := range items {
		deficit := it.MinimumQuantity - it.Quantity
		suggested := max(it.ReorderQuantity, deficit)
		if suggested == 0 {
			suggested = it.MinimumQuantity
		}
		row := dto.ReplenishmentItemDTO{
			ProductID:         it.ProductID,
			Code:              it.Code,
			Name:              it.Name,
			Quantity:          it.Quantity,
			MinimumQuantity:   it.MinimumQuantity,
			Deficit:           deficit,
			SuggestedQuantity: suggested,
			LeadTimeDays:      it.LeadTimeDays,
			SupplierID:        it.PreferredSupplier,
		}

		best, err := uc.bestPrice(ctx, it.ProductID, it.PreferredSupplier, today)
		if err != nil {
			return nil, err
		}
		unitCost := it.AcquisitionCost
		if best != nil {
			row.BestPrice = &best.Price
			row.SupplierID = &best.SupplierID
			unitCost = best.Price
		}
		if row.SupplierID != nil {
			if s, err := uc.repos.Suppliers.GetByID(ctx, *row.SupplierID); err == nil {
				row.SupplierName = s.CompanyName
			}
		}
		row.EstimatedCost = unitCost.Mul(decimal.NewFromInt(int64(suggested)))
		out = append(out, row)
	}
	return out, nil
}

// bestPrice menor precio vigente del producto, restringido al proveedor si se indica.
func (uc *ReplenishmentUseCase) bestPrice(ctx context.Context, productID int64, supplierID *int64, day time.Time) (*entity.SupplierPriceList, error) {
	prices, err := uc.repos.PriceLists.List(ctx, repository.PriceListFilter{
		ProductID:  &productID,
		SupplierID: supplierID,
		ValidOn:    &day,
	})
	if err != nil {
		return nil, err
	}
	var best *entity.SupplierPriceList
	for _, p := range prices {
		if best == nil || p.Price.LessThan(best.Price) {
			best = p
		}
	}
	return best, nil
}
