package purchasing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/inventory"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// DocumentTypeSupplierOrder tipo de documento de los movimientos generados al recibir un pedido.
const DocumentTypeSupplierOrder = "SUPPLIER_ORDER"

// SupplierOrderUseCase pedidos a proveedor y su recepción en almacén.
type SupplierOrderUseCase struct {
	tx        repository.TxRunner
	repos     repository.Repositories
	movements *inventory.MovementUseCase
	limits    dto.Limits
	now       func() time.Time
}

// NewSupplierOrderUseCase construye el caso de uso.
func NewSupplierOrderUseCase(tx repository.TxRunner, repos repository.Repositories, movements *inventory.MovementUseCase, limits dto.Limits) *SupplierOrderUseCase {
	return &SupplierOrderUseCase{tx: tx, repos: repos, movements: movements, limits: limits, now: time.Now}
}

// Create guarda cabecera y líneas. Estado por defecto DRAFT; RECEIVED solo se alcanza con Receive.
func (uc *SupplierOrderUseCase) Create(ctx context.Context, in dto.SupplierOrderRequest) (*dto.SupplierOrderResponse, error) {
	var out *entity.SupplierOrder
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		order, err := build(ctx, repos, in)
		if err != nil {
			return err
		}
		if order.OrderDate.IsZero() {
			order.OrderDate = uc.now().UTC()
		}
		id, err := repos.SupplierOrders.Create(ctx, order)
		if err != nil {
			return err
		}
		out, err = repos.SupplierOrders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toSupplierOrderResponse(out), nil
}

// GetByID obtiene el pedido con sus líneas.
func (uc *SupplierOrderUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierOrderResponse, error) {
	order, err := uc.repos.SupplierOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierOrderResponse(order), nil
}

// Update reemplaza cabecera y líneas. Un pedido ya recibido no se modifica (ErrConflict).
func (uc *SupplierOrderUseCase) Update(ctx context.Context, id int64, in dto.SupplierOrderRequest) (*dto.SupplierOrderResponse, error) {
	var out *entity.SupplierOrder
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		current, err := repos.SupplierOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == entity.SupplierOrderStatusReceived {
			return fmt.Errorf("%w: pedido %d ya recibido", domain.ErrConflict, id)
		}
		order, err := build(ctx, repos, in)
		if err != nil {
			return err
		}
		order.ID = id
		if order.OrderDate.IsZero() {
			order.OrderDate = current.OrderDate
		}
		if err := repos.SupplierOrders.Update(ctx, order); err != nil {
			return err
		}
		out, err = repos.SupplierOrders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toSupplierOrderResponse(out), nil
}

// Delete elimina el pedido y sus líneas.
func (uc *SupplierOrderUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repos.SupplierOrders.Delete(ctx, id)
}

// List lista cabeceras de pedidos a proveedor.
func (uc *SupplierOrderUseCase) List(ctx context.Context, in dto.SupplierOrderListRequest) (*dto.ListResponse[dto.SupplierOrderResponse], error) {
	f := repository.SupplierOrderFilter{
		ListFilter: in.PageRequest.ListFilter(uc.limits),
		Status:     strings.ToUpper(strings.TrimSpace(in.Status)),
	}
	if in.SupplierID > 0 {
		f.SupplierID = &in.SupplierID
	}
	list, err := uc.repos.SupplierOrders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toSupplierOrderResponse(o))
	}
	return &dto.ListResponse[dto.SupplierOrderResponse]{Items: out, Page: dto.NewPageResponse(f.ListFilter)}, nil
}

// ListItems devuelve las líneas de un pedido existente.
func (uc *SupplierOrderUseCase) ListItems(ctx context.Context, orderID int64) ([]dto.SupplierOrderItemResponse, error) {
	if _, err := uc.repos.SupplierOrders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := uc.repos.SupplierOrders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// Receive marca el pedido como RECEIVED y registra una carga por línea en una sola transacción.
// Recibir dos veces, o un pedido cancelado, devuelve ErrConflict.
func (uc *SupplierOrderUseCase) Receive(ctx context.Context, id int64) (*dto.SupplierOrderResponse, error) {
	var (
		out     *entity.SupplierOrder
		applied []entity.WarehouseMovement
	)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		order, err := repos.SupplierOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch order.Status {
		case entity.SupplierOrderStatusReceived:
			return fmt.Errorf("%w: pedido %d ya recibido", domain.ErrConflict, id)
		case entity.SupplierOrderStatusCancelled:
			return fmt.Errorf("%w: pedido %d cancelado", domain.ErrConflict, id)
		}
		if err := repos.SupplierOrders.UpdateStatus(ctx, id, entity.SupplierOrderStatusReceived); err != nil {
			return err
		}
		now := uc.now().UTC()
		for _, it := range order.Items {
			if it.Quantity == 0 {
				continue
			}
			m := &entity.WarehouseMovement{
				ProductID:      it.ProductID,
				Date:           now,
				Type:           entity.MovementTypeIN,
				Quantity:       it.Quantity,
				Reason:         "Recepción pedido a proveedor",
				DocumentNumber: fmt.Sprintf("%d", order.ID),
				DocumentType:   DocumentTypeSupplierOrder,
			}
			if _, err := uc.movements.ApplyInTx(ctx, repos, m); err != nil {
				return err
			}
			applied = append(applied, *m)
		}
		out, err = repos.SupplierOrders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.movements.Observe(applied...)
	return toSupplierOrderResponse(out), nil
}

func build(ctx context.Context, repos repository.Repositories, in dto.SupplierOrderRequest) (*entity.SupplierOrder, error) {
	v := domain.NewValidationError()
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	switch status {
	case "":
		status = entity.SupplierOrderStatusDraft
	case entity.SupplierOrderStatusDraft, entity.SupplierOrderStatusSent, entity.SupplierOrderStatusCancelled:
	default:
		v.Add("status", domain.ViolationInvalid)
	}
	if in.SupplierID <= 0 {
		v.Add("supplier_id", domain.ViolationRequired)
	} else if _, err := repos.Suppliers.GetByID(ctx, in.SupplierID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		v.Add("supplier_id", domain.ViolationNotFound)
	}
	if len(in.Items) == 0 {
		v.Add("items", domain.ViolationRequired)
	}
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		v.Positive(field+".quantity", it.Quantity)
		if it.UnitPrice.IsNegative() {
			v.Add(field+".unit_price", domain.ViolationNegative)
		}
		if it.ProductID <= 0 {
			v.Add(field+".product_id", domain.ViolationRequired)
			continue
		}
		if _, err := repos.Products.GetByID(ctx, it.ProductID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			v.Add(field+".product_id", domain.ViolationNotFound)
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	order := &entity.SupplierOrder{SupplierID: in.SupplierID, Status: status, Notes: in.Notes}
	if in.OrderDate != nil {
		order.OrderDate = in.OrderDate.UTC()
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, entity.SupplierOrderItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	order.Recalculate()
	return order, nil
}

func toSupplierOrderResponse(o *entity.SupplierOrder) *dto.SupplierOrderResponse {
	return &dto.SupplierOrderResponse{
		ID:           o.ID,
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		OrderDate:    o.OrderDate,
		Status:       o.Status,
		Total:        o.Total,
		Notes:        o.Notes,
		Items:        toItemResponses(o.Items),
	}
}

func toItemResponses(items []entity.SupplierOrderItem) []dto.SupplierOrderItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]dto.SupplierOrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SupplierOrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return out
}
