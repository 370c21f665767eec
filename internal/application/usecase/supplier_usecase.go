package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo   repository.SupplierRepository
	limits dto.Limits
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, limits dto.Limits) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, limits: limits}
}

// Create da de alta un proveedor. La razón social es obligatoria.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s := supplierFromRequest(in)
	if err := validateSupplier(s); err != nil {
		return nil, err
	}
	id, err := uc.repo.Create(ctx, s)
	if err != nil {
		return nil, err
	}
	s.ID = id
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s := supplierFromRequest(in)
	s.ID = id
	if err := validateSupplier(s); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Delete elimina el proveedor. Sus productos y mínimos quedan sin proveedor y sus listas de precios se borran;
// con pedidos a proveedor asociados devuelve ErrConstraintViolation.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List lista proveedores.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.SupplierResponse], error) {
	f := page.ListFilter(uc.limits)
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return &dto.ListResponse[dto.SupplierResponse]{Items: out, Page: dto.NewPageResponse(f)}, nil
}

func supplierFromRequest(in dto.SupplierRequest) *entity.Supplier {
	return &entity.Supplier{
		CompanyName:    strings.TrimSpace(in.CompanyName),
		VATNumber:      strings.TrimSpace(in.VATNumber),
		TaxCode:        strings.TrimSpace(in.TaxCode),
		Address:        strings.TrimSpace(in.Address),
		Phone:          strings.TrimSpace(in.Phone),
		Email:          strings.TrimSpace(in.Email),
		CertifiedEmail: strings.TrimSpace(in.CertifiedEmail),
		Website:        strings.TrimSpace(in.Website),
		Notes:          in.Notes,
	}
}

func validateSupplier(s *entity.Supplier) error {
	v := domain.NewValidationError()
	v.Required("company_name", s.CompanyName)
	return v.OrNil()
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		CompanyName:    s.CompanyName,
		VATNumber:      s.VATNumber,
		TaxCode:        s.TaxCode,
		Address:        s.Address,
		Phone:          s.Phone,
		Email:          s.Email,
		CertifiedEmail: s.CertifiedEmail,
		Website:        s.Website,
		Notes:          s.Notes,
	}
}
