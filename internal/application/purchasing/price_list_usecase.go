package purchasing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// PriceListUseCase listas de precios de proveedor.
type PriceListUseCase struct {
	repos  repository.Repositories
	limits dto.Limits
}

// NewPriceListUseCase construye el caso de uso.
func NewPriceListUseCase(repos repository.Repositories, limits dto.Limits) *PriceListUseCase {
	return &PriceListUseCase{repos: repos, limits: limits}
}

// Create valida y registra un precio de proveedor.
func (uc *PriceListUseCase) Create(ctx context.Context, in dto.PriceListRequest) (*dto.PriceListResponse, error) {
	p, err := uc.fromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repos.PriceLists.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPriceListResponse(p), nil
}

// GetByID obtiene un precio.
func (uc *PriceListUseCase) GetByID(ctx context.Context, id int64) (*dto.PriceListResponse, error) {
	p, err := uc.repos.PriceLists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPriceListResponse(p), nil
}

// Update reemplaza un precio.
func (uc *PriceListUseCase) Update(ctx context.Context, id int64, in dto.PriceListRequest) (*dto.PriceListResponse, error) {
	p, err := uc.fromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := uc.repos.PriceLists.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPriceListResponse(p), nil
}

// Delete elimina un precio.
func (uc *PriceListUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repos.PriceLists.Delete(ctx, id)
}

// List lista precios por proveedor, producto y fecha de vigencia.
func (uc *PriceListUseCase) List(ctx context.Context, in dto.PriceListListRequest) (*dto.ListResponse[dto.PriceListResponse], error) {
	f := repository.PriceListFilter{ListFilter: in.PageRequest.ListFilter(uc.limits)}
	if in.SupplierID > 0 {
		f.SupplierID = &in.SupplierID
	}
	if in.ProductID > 0 {
		f.ProductID = &in.ProductID
	}
	if s := strings.TrimSpace(in.ValidOn); s != "" {
		day, err := time.Parse(time.DateOnly, s)
		if err != nil {
			v := domain.NewValidationError()
			v.Add("valid_on", domain.ViolationInvalid)
			return nil, v
		}
		f.ValidOn = &day
	}
	list, err := uc.repos.PriceLists.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPriceListResponse(p))
	}
	return &dto.ListResponse[dto.PriceListResponse]{Items: out, Page: dto.NewPageResponse(f.ListFilter)}, nil
}

func (uc *PriceListUseCase) fromRequest(ctx context.Context, in dto.PriceListRequest) (*entity.SupplierPriceList, error) {
	v := domain.NewValidationError()
	if in.SupplierID <= 0 {
		v.Add("supplier_id", domain.ViolationRequired)
	} else if _, err := uc.repos.Suppliers.GetByID(ctx, in.SupplierID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		v.Add("supplier_id", domain.ViolationNotFound)
	}
	if in.ProductID <= 0 {
		v.Add("product_id", domain.ViolationRequired)
	} else if _, err := uc.repos.Products.GetByID(ctx, in.ProductID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		v.Add("product_id", domain.ViolationNotFound)
	}
	if in.Price.IsNegative() {
		v.Add("price", domain.ViolationNegative)
	}
	v.NonNegative("minimum_quantity", in.MinimumQuantity)
	if in.ValidityStart.IsZero() {
		v.Add("validity_start", domain.ViolationRequired)
	}
	start := day(in.ValidityStart)
	var end *time.Time
	if in.ValidityEnd != nil {
		e := day(*in.ValidityEnd)
		if !in.ValidityStart.IsZero() && e.Before(start) {
			v.Add("validity_end", domain.ViolationBeforeStart)
		}
		end = &e
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return &entity.SupplierPriceList{
		SupplierID:          in.SupplierID,
		ProductID:           in.ProductID,
		SupplierProductCode: strings.TrimSpace(in.SupplierProductCode),
		Price:               in.Price,
		MinimumQuantity:     in.MinimumQuantity,
		ValidityStart:       start,
		ValidityEnd:         end,
		Notes:               in.Notes,
	}, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toPriceListResponse(p *entity.SupplierPriceList) *dto.PriceListResponse {
	return &dto.PriceListResponse{
		ID:                  p.ID,
		SupplierID:          p.SupplierID,
		ProductID:           p.ProductID,
		SupplierProductCode: p.SupplierProductCode,
		Price:               p.Price,
		MinimumQuantity:     p.MinimumQuantity,
		ValidityStart:       p.ValidityStart,
		ValidityEnd:         p.ValidityEnd,
		Notes:               p.Notes,
	}
}
