package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var maxVATRate = decimal.NewFromInt(100)

// ProductPolicy reglas configurables del catálogo.
type ProductPolicy struct {
	UniqueCode bool
}

// ProductUseCase casos de uso del catálogo. El stock se mueve normalmente vía movimientos de almacén.
type ProductUseCase struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
	policy    ProductPolicy
	limits    dto.Limits
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, suppliers repository.SupplierRepository, policy ProductPolicy, limits dto.Limits) *ProductUseCase {
	return &ProductUseCase{repo: repo, suppliers: suppliers, policy: policy, limits: limits}
}

// Create da de alta un producto. Con UniqueCode activo un código repetido devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := productFromRequest(in)
	if err := uc.validate(ctx, product); err != nil {
		return nil, err
	}
	id, err := uc.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return toProductResponse(product), nil
}

// Replace sustituye el producto completo (PUT): los campos ausentes toman su valor por defecto.
func (uc *ProductUseCase) Replace(ctx context.Context, id int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	product := productFromRequest(in)
	product.ID = id
	if err := uc.validate(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func productFromRequest(in dto.CreateProductRequest) *entity.Product {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &entity.Product{
		Code:              strings.TrimSpace(in.Code),
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Price:             in.Price,
		Quantity:          in.Quantity,
		Category:          strings.TrimSpace(in.Category),
		AlternativeSKU:    strings.TrimSpace(in.AlternativeSKU),
		Weight:            in.Weight,
		UnitOfMeasure:     strings.TrimSpace(in.UnitOfMeasure),
		MinimumQuantity:   in.MinimumQuantity,
		AcquisitionCost:   in.AcquisitionCost,
		Active:            active,
		SupplierID:        in.SupplierID,
		WarehousePosition: strings.TrimSpace(in.WarehousePosition),
		VATRate:           in.VATRate,
	}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica solo los campos presentes en la petición (PATCH).
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		product.Code = strings.TrimSpace(*in.Code)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.AlternativeSKU != nil {
		product.AlternativeSKU = strings.TrimSpace(*in.AlternativeSKU)
	}
	if in.Weight != nil {
		product.Weight = *in.Weight
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = strings.TrimSpace(*in.UnitOfMeasure)
	}
	if in.MinimumQuantity != nil {
		product.MinimumQuantity = *in.MinimumQuantity
	}
	if in.AcquisitionCost != nil {
		product.AcquisitionCost = *in.AcquisitionCost
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.SupplierID != nil {
		product.SupplierID = in.SupplierID
	}
	if in.ClearSupplier {
		product.SupplierID = nil
	}
	if in.WarehousePosition != nil {
		product.WarehousePosition = strings.TrimSpace(*in.WarehousePosition)
	}
	if in.VATRate != nil {
		product.VATRate = *in.VATRate
	}
	if err := uc.validate(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo (borrado lógico).
func (uc *ProductUseCase) Deactivate(ctx context.Context, id int64) error {
	return uc.repo.SetActive(ctx, id, false)
}

// Activate reactiva un producto.
func (uc *ProductUseCase) Activate(ctx context.Context, id int64) error {
	return uc.repo.SetActive(ctx, id, true)
}

// Delete elimina físicamente el producto; si está referenciado por documentos devuelve ErrConstraintViolation.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List lista productos con filtros.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ListResponse[dto.ProductResponse], error) {
	f := repository.ProductFilter{
		ListFilter: in.PageRequest.ListFilter(uc.limits),
		ActiveOnly: in.ActiveOnly,
		Category:   strings.TrimSpace(in.Category),
	}
	if in.SupplierID > 0 {
		f.SupplierID = &in.SupplierID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return &dto.ListResponse[dto.ProductResponse]{Items: out, Page: dto.NewPageResponse(f.ListFilter)}, nil
}

func (uc *ProductUseCase) validate(ctx context.Context, p *entity.Product) error {
	v := domain.NewValidationError()
	v.Required("code", p.Code)
	v.Required("name", p.Name)
	if p.Price.IsNegative() {
		v.Add("price", domain.ViolationNegative)
	}
	v.NonNegative("quantity", p.Quantity)
	v.NonNegative("minimum_quantity", p.MinimumQuantity)
	if p.AcquisitionCost.IsNegative() {
		v.Add("acquisition_cost", domain.ViolationNegative)
	}
	if p.Weight.IsNegative() {
		v.Add("weight", domain.ViolationNegative)
	}
	if p.VATRate.IsNegative() || p.VATRate.GreaterThan(maxVATRate) {
		v.Add("vat_rate", domain.ViolationOutOfRange)
	}
	if p.SupplierID != nil {
		if _, err := uc.suppliers.GetByID(ctx, *p.SupplierID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			v.Add("supplier_id", domain.ViolationNotFound)
		}
	}
	if !v.Empty() {
		return v
	}
	if uc.policy.UniqueCode {
		existing, err := uc.repo.GetByCode(ctx, p.Code)
		switch {
		case err == nil && existing.ID != p.ID:
			return domain.ErrDuplicate
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Quantity:          p.Quantity,
		Category:          p.Category,
		AlternativeSKU:    p.AlternativeSKU,
		Weight:            p.Weight,
		UnitOfMeasure:     p.UnitOfMeasure,
		MinimumQuantity:   p.MinimumQuantity,
		AcquisitionCost:   p.AcquisitionCost,
		Active:            p.Active,
		SupplierID:        p.SupplierID,
		WarehousePosition: p.WarehousePosition,
		VATRate:           p.VATRate,
	}
}
