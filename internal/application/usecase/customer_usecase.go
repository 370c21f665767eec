package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	limits dto.Limits
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, limits dto.Limits) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, limits: limits}
}

// Create valida y da de alta un cliente. Nombre y apellido son obligatorios.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer := customerFromRequest(in)
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	id, err := uc.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	customer.ID = id
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update reemplaza todos los campos editables del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer := customerFromRequest(in)
	customer.ID = id
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina el cliente; falla con ErrConstraintViolation si tiene pedidos o facturas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List lista clientes con búsqueda, orden y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.CustomerResponse], error) {
	f := page.ListFilter(uc.limits)
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return &dto.ListResponse[dto.CustomerResponse]{Items: out, Page: dto.NewPageResponse(f)}, nil
}

func customerFromRequest(in dto.CustomerRequest) *entity.Customer {
	return &entity.Customer{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
}

func validateCustomer(c *entity.Customer) error {
	v := domain.NewValidationError()
	v.Required("first_name", c.FirstName)
	v.Required("last_name", c.LastName)
	return v.OrNil()
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
	}
}
