package inventory

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

// MinimumStockUseCase parámetros de reposición por producto.
type MinimumStockUseCase struct {
	repos  repository.Repositories
	limits dto.Limits
}

// NewMinimumStockUseCase construye el caso de uso.
func NewMinimumStockUseCase(repos repository.Repositories, limits dto.Limits) *MinimumStockUseCase {
	return &MinimumStockUseCase{repos: repos, limits: limits}
}

// Upsert crea o reemplaza los parámetros del producto. El producto debe existir.
func (uc *MinimumStockUseCase) Upsert(ctx context.Context, productID int64, in dto.MinimumStockRequest) (*dto.MinimumStockResponse, error) {
	if _, err := uc.repos.Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	v.NonNegative("minimum_quantity", in.MinimumQuantity)
	v.NonNegative("reorder_quantity", in.ReorderQuantity)
	v.NonNegative("lead_time_days", in.LeadTimeDays)
	if in.PreferredSupplier != nil {
		if _, err := uc.repos.Suppliers.GetByID(ctx, *in.PreferredSupplier); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			v.Add("preferred_supplier", domain.ViolationNotFound)
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	ms := &entity.MinimumStock{
		ProductID:         productID,
		MinimumQuantity:   in.MinimumQuantity,
		ReorderQuantity:   in.ReorderQuantity,
		LeadTimeDays:      in.LeadTimeDays,
		PreferredSupplier: in.PreferredSupplier,
		Notes:             in.Notes,
	}
	if err := uc.repos.MinimumStock.Upsert(ctx, ms); err != nil {
		return nil, err
	}
	return toMinimumStockResponse(ms), nil
}

// Get obtiene los parámetros del producto.
func (uc *MinimumStockUseCase) Get(ctx context.Context, productID int64) (*dto.MinimumStockResponse, error) {
	ms, err := uc.repos.MinimumStock.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toMinimumStockResponse(ms), nil
}

// Delete elimina los parámetros; el producto vuelve a usar products.minimum_quantity.
func (uc *MinimumStockUseCase) Delete(ctx context.Context, productID int64) error {
	return uc.repos.MinimumStock.Delete(ctx, productID)
}

// List lista parámetros de reposición.
func (uc *MinimumStockUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.MinimumStockResponse], error) {
	f := page.ListFilter(uc.limits)
	list, err := uc.repos.MinimumStock.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MinimumStockResponse, 0, len(list))
	for _, ms := range list {
		out = append(out, *toMinimumStockResponse(ms))
	}
	return &dto.ListResponse[dto.MinimumStockResponse]{Items: out, Page: dto.NewPageResponse(f)}, nil
}

func toMinimumStockResponse(ms *entity.MinimumStock) *dto.MinimumStockResponse {
	return &dto.MinimumStockResponse{
		ProductID:         ms.ProductID,
		MinimumQuantity:   ms.MinimumQuantity,
		ReorderQuantity:   ms.ReorderQuantity,
		LeadTimeDays:      ms.LeadTimeDays,
		PreferredSupplier: ms.PreferredSupplier,
		Notes:             ms.Notes,
	}
}

// NotificationUseCase avisos de almacén.
type NotificationUseCase struct {
	repos  repository.Repositories
	limits dto.Limits
	now    func() time.Time
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repos repository.Repositories, limits dto.Limits) *NotificationUseCase {
	return &NotificationUseCase{repos: repos, limits: limits, now: time.Now}
}

// Create registra una notificación manual. Estado por defecto NEW.
func (uc *NotificationUseCase) Create(ctx context.Context, in dto.NotificationRequest) (*dto.NotificationResponse, error) {
	n, err := notificationFromRequest(in)
	if err != nil {
		return nil, err
	}
	if n.Date.IsZero() {
		n.Date = uc.now().UTC()
	}
	if err := checkProductExists(ctx, uc.repos.Products, n.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.repos.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

// GetByID obtiene una notificación.
func (uc *NotificationUseCase) GetByID(ctx context.Context, id int64) (*dto.NotificationResponse, error) {
	n, err := uc.repos.Notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

// Update reemplaza una notificación.
func (uc *NotificationUseCase) Update(ctx context.Context, id int64, in dto.NotificationRequest) (*dto.NotificationResponse, error) {
	n, err := notificationFromRequest(in)
	if err != nil {
		return nil, err
	}
	n.ID = id
	if n.Date.IsZero() {
		current, err := uc.repos.Notifications.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		n.Date = current.Date
	}
	if err := checkProductExists(ctx, uc.repos.Products, n.ProductID); err != nil {
		return nil, err
	}
	if err := uc.repos.Notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

// Delete elimina una notificación.
func (uc *NotificationUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repos.Notifications.Delete(ctx, id)
}

// MarkRead marca la notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id int64) error {
	return uc.repos.Notifications.UpdateStatus(ctx, id, entity.NotificationStatusRead)
}

// Resolve cierra la notificación; a partir de aquí puede generarse otra del mismo tipo.
func (uc *NotificationUseCase) Resolve(ctx context.Context, id int64) error {
	return uc.repos.Notifications.UpdateStatus(ctx, id, entity.NotificationStatusResolved)
}

// List lista notificaciones por producto y estado.
func (uc *NotificationUseCase) List(ctx context.Context, in dto.NotificationListRequest) (*dto.ListResponse[dto.NotificationResponse], error) {
	f := repository.NotificationFilter{
		ListFilter: in.PageRequest.ListFilter(uc.limits),
		Status:     strings.ToUpper(strings.TrimSpace(in.Status)),
	}
	if in.ProductID > 0 {
		f.ProductID = &in.ProductID
	}
	list, err := uc.repos.Notifications.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *toNotificationResponse(n))
	}
	return &dto.ListResponse[dto.NotificationResponse]{Items: out, Page: dto.NewPageResponse(f.ListFilter)}, nil
}

func notificationFromRequest(in dto.NotificationRequest) (*entity.WarehouseNotification, error) {
	n := &entity.WarehouseNotification{
		ProductID: in.ProductID,
		Type:      strings.ToUpper(strings.TrimSpace(in.Type)),
		Message:   strings.TrimSpace(in.Message),
		Status:    strings.ToUpper(strings.TrimSpace(in.Status)),
	}
	if in.Date != nil {
		n.Date = in.Date.UTC()
	}
	if n.Status == "" {
		n.Status = entity.NotificationStatusNew
	}
	v := domain.NewValidationError()
	if n.ProductID <= 0 {
		v.Add("product_id", domain.ViolationRequired)
	}
	v.Required("type", n.Type)
	switch n.Status {
	case entity.NotificationStatusNew, entity.NotificationStatusRead, entity.NotificationStatusResolved:
	default:
		v.Add("status", domain.ViolationInvalid)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return n, nil
}

func toNotificationResponse(n *entity.WarehouseNotification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		ProductID: n.ProductID,
		Date:      n.Date,
		Type:      n.Type,
		Message:   n.Message,
		Status:    n.Status,
	}
}
