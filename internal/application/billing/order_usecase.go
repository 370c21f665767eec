package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// OrderUseCase pedidos de cliente: cabecera y líneas se escriben siempre en una sola transacción.
type OrderUseCase struct {
	tx     repository.TxRunner
	repos  repository.Repositories
	limits dto.Limits
	now    func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(tx repository.TxRunner, repos repository.Repositories, limits dto.Limits) *OrderUseCase {
	return &OrderUseCase{tx: tx, repos: repos, limits: limits, now: time.Now}
}

// Create valida cliente, productos y líneas y guarda el pedido. Un precio unitario cero toma el precio del producto.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.OrderRequest) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		order, err := uc.build(ctx, repos, in, nil)
		if err != nil {
			return err
		}
		if order.OrderDate.IsZero() {
			order.OrderDate = uc.now().UTC()
		}
		id, err := repos.Orders.Create(ctx, order)
		if err != nil {
			return err
		}
		out, err = repos.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out), nil
}

// GetByID obtiene el pedido con sus líneas y el nombre del cliente.
func (uc *OrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Update reemplaza cabecera y líneas del pedido en una transacción.
func (uc *OrderUseCase) Update(ctx context.Context, id int64, in dto.OrderRequest) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		current, err := repos.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		keep := make(map[int64]bool, len(current.Items))
		for _, it := range current.Items {
			keep[it.ProductID] = true
		}
		order, err := uc.build(ctx, repos, in, keep)
		if err != nil {
			return err
		}
		order.ID = id
		if order.OrderDate.IsZero() {
			order.OrderDate = current.OrderDate
		}
		if err := repos.Orders.Update(ctx, order); err != nil {
			return err
		}
		out, err = repos.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out), nil
}

// Delete elimina el pedido y sus líneas.
func (uc *OrderUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repos.Orders.Delete(ctx, id)
}

// List lista cabeceras de pedido (sin líneas).
func (uc *OrderUseCase) List(ctx context.Context, in dto.OrderListRequest) (*dto.ListResponse[dto.OrderResponse], error) {
	f := repository.OrderFilter{
		ListFilter: in.PageRequest.ListFilter(uc.limits),
		Status:     strings.ToUpper(strings.TrimSpace(in.Status)),
	}
	if in.CustomerID > 0 {
		f.CustomerID = &in.CustomerID
	}
	list, err := uc.repos.Orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return &dto.ListResponse[dto.OrderResponse]{Items: out, Page: dto.NewPageResponse(f.ListFilter)}, nil
}

// ListItems devuelve las líneas de un pedido existente.
func (uc *OrderUseCase) ListItems(ctx context.Context, orderID int64) ([]dto.OrderItemResponse, error) {
	if _, err := uc.repos.Orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := uc.repos.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderItemResponses(items), nil
}

func (uc *OrderUseCase) build(ctx context.Context, repos repository.Repositories, in dto.OrderRequest, keep map[int64]bool) (*entity.Order, error) {
	v := domain.NewValidationError()
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.OrderStatusNew
	}
	if !validStatus(status, entity.OrderStatusNew, entity.OrderStatusProcessing, entity.OrderStatusCompleted, entity.OrderStatusCancelled) {
		v.Add("status", domain.ViolationInvalid)
	}
	if err := checkCustomer(ctx, repos.Customers, in.CustomerID, v); err != nil {
		return nil, err
	}
	lines := make([]lineRef, len(in.Items))
	for i, it := range in.Items {
		lines[i] = lineRef{ProductID: it.ProductID, Quantity: it.Quantity}
		if it.UnitPrice.IsNegative() {
			v.Add(fmt.Sprintf("items[%d].unit_price", i), domain.ViolationNegative)
		}
	}
	products, err := loadLineProducts(ctx, repos.Products, lines, keep, v)
	if err != nil {
		return nil, err
	}
	if !v.Empty() {
		return nil, v
	}

	order := &entity.Order{CustomerID: in.CustomerID, Status: status}
	if in.OrderDate != nil {
		order.OrderDate = in.OrderDate.UTC()
	}
	for _, it := range in.Items {
		price := it.UnitPrice
		if price.IsZero() {
			price = products[it.ProductID].Price
		}
		order.Items = append(order.Items, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: price})
	}
	order.Total = order.ComputeTotal()
	return order, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		Status:       o.Status,
		Total:        o.Total,
		Items:        toOrderItemResponses(o.Items),
	}
}

func toOrderItemResponses(items []entity.OrderItem) []dto.OrderItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total(),
		})
	}
	return out
}
