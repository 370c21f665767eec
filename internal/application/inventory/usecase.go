package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// MovementUseCase registra cargas y descargas de almacén. Cada escritura inserta o modifica el movimiento
// y ajusta products.quantity en la misma transacción.
type MovementUseCase struct {
	tx       repository.TxRunner
	repos    repository.Repositories
	limits   dto.Limits
	observer MovementObserver
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso. observer puede ser nil.
func NewMovementUseCase(tx repository.TxRunner, repos repository.Repositories, limits dto.Limits, observer MovementObserver) *MovementUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &MovementUseCase{tx: tx, repos: repos, limits: limits, observer: observer, now: time.Now}
}

// RegisterMovement valida y aplica un movimiento. Una descarga que dejaría el stock negativo
// devuelve ErrInsufficientStock y no escribe nada.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, in dto.MovementRequest) (*dto.MovementResponse, error) {
	m, err := movementFromRequest(in)
	if err != nil {
		return nil, err
	}
	if m.Date.IsZero() {
		m.Date = uc.now().UTC()
	}
	var stock int
	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := checkProductExists(ctx, repos.Products, m.ProductID); err != nil {
			return err
		}
		var err error
		stock, err = uc.ApplyInTx(ctx, repos, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.Observe(*m)
	return toMovementResponse(m, &stock), nil
}

// ApplyInTx inserta el movimiento y ajusta el stock usando los repositorios de la transacción del caller.
// Devuelve la cantidad resultante del producto.
func (uc *MovementUseCase) ApplyInTx(ctx context.Context, repos repository.Repositories, m *entity.WarehouseMovement) (int, error) {
	if _, err := repos.Movements.Create(ctx, m); err != nil {
		return 0, err
	}
	return uc.adjust(ctx, repos, m.ProductID, m.StockDelta())
}

// Observe notifica al observador los movimientos ya confirmados.
func (uc *MovementUseCase) Observe(ms ...entity.WarehouseMovement) {
	for _, m := range ms {
		uc.observer.RecordMovement(m.Type)
	}
}

// GetByID obtiene un movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	m, err := uc.repos.Movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(m, nil), nil
}

// Update reemplaza un movimiento: revierte su efecto sobre el stock y aplica el nuevo.
func (uc *MovementUseCase) Update(ctx context.Context, id int64, in dto.MovementRequest) (*dto.MovementResponse, error) {
	m, err := movementFromRequest(in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	var stock int
	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		old, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m.Date.IsZero() {
			m.Date = old.Date
		}
		if err := checkProductExists(ctx, repos.Products, m.ProductID); err != nil {
			return err
		}
		if err := repos.Movements.Update(ctx, m); err != nil {
			return err
		}
		if old.ProductID == m.ProductID {
			stock, err = uc.adjust(ctx, repos, m.ProductID, m.StockDelta()-old.StockDelta())
			return err
		}
		if _, err := uc.adjust(ctx, repos, old.ProductID, -old.StockDelta()); err != nil {
			return err
		}
		stock, err = uc.adjust(ctx, repos, m.ProductID, m.StockDelta())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.Observe(*m)
	return toMovementResponse(m, &stock), nil
}

// Delete elimina un movimiento y revierte su efecto sobre el stock.
func (uc *MovementUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		old, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Movements.Delete(ctx, id); err != nil {
			return err
		}
		_, err = uc.adjust(ctx, repos, old.ProductID, -old.StockDelta())
		return err
	})
}

// List lista movimientos por producto, tipo y rango de fechas.
func (uc *MovementUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.ListResponse[dto.MovementResponse], error) {
	f := repository.MovementFilter{
		ListFilter: in.PageRequest.ListFilter(uc.limits),
		Type:       strings.ToUpper(strings.TrimSpace(in.Type)),
	}
	if in.ProductID > 0 {
		f.ProductID = &in.ProductID
	}
	v := domain.NewValidationError()
	f.From = parseDay(v, "from", in.From)
	f.To = parseDay(v, "to", in.To)
	if f.To != nil {
		end := f.To.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	list, err := uc.repos.Movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m, nil))
	}
	return &dto.ListResponse[dto.MovementResponse]{Items: out, Page: dto.NewPageResponse(f.ListFilter)}, nil
}

// adjust suma delta al stock del producto y genera la notificación de stock bajo si corresponde.
func (uc *MovementUseCase) adjust(ctx context.Context, repos repository.Repositories, productID int64, delta int) (int, error) {
	product, err := repos.Products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product.Quantity+delta < 0 {
		return 0, fmt.Errorf("%w: %s disponible %d, requerido %d", domain.ErrInsufficientStock, product.Code, product.Quantity, -delta)
	}
	qty, err := repos.Products.AdjustQuantity(ctx, productID, delta)
	if err != nil {
		if delta < 0 && errors.Is(err, domain.ErrConstraintViolation) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, err
	}
	product.Quantity = qty
	if err := uc.notifyIfLow(ctx, repos, product); err != nil {
		return 0, err
	}
	return qty, nil
}

// notifyIfLow crea LOW_STOCK u OUT_OF_STOCK cuando el stock queda en o bajo el mínimo
// (minimum_stock si existe, si no products.minimum_quantity) y no hay otra abierta del mismo tipo.
func (uc *MovementUseCase) notifyIfLow(ctx context.Context, repos repository.Repositories, p *entity.Product) error {
	minimum := p.MinimumQuantity
	ms, err := repos.MinimumStock.Get(ctx, p.ID)
	switch {
	case err == nil:
		minimum = ms.MinimumQuantity
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	var kind, msg string
	switch {
	case p.Quantity == 0 && minimum > 0:
		kind = entity.NotificationTypeOutOfStock
		msg = fmt.Sprintf("Producto %s (%s) sin stock, mínimo %d", p.Name, p.Code, minimum)
	case minimum > 0 && p.Quantity <= minimum:
		kind = entity.NotificationTypeLowStock
		msg = fmt.Sprintf("Producto %s (%s): stock %d, mínimo %d", p.Name, p.Code, p.Quantity, minimum)
	default:
		return nil
	}
	open, err := repos.Notifications.HasOpen(ctx, p.ID, kind)
	if err != nil || open {
		return err
	}
	_, err = repos.Notifications.Create(ctx, &entity.WarehouseNotification{
		ProductID: p.ID,
		Date:      uc.now().UTC(),
		Type:      kind,
		Message:   msg,
		Status:    entity.NotificationStatusNew,
	})
	return err
}

func movementFromRequest(in dto.MovementRequest) (*entity.WarehouseMovement, error) {
	m := &entity.WarehouseMovement{
		ProductID:      in.ProductID,
		Type:           strings.ToUpper(strings.TrimSpace(in.Type)),
		Quantity:       in.Quantity,
		Reason:         strings.TrimSpace(in.Reason),
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		DocumentType:   strings.TrimSpace(in.DocumentType),
		Notes:          in.Notes,
	}
	if in.Date != nil {
		m.Date = in.Date.UTC()
	}
	v := domain.NewValidationError()
	if m.ProductID <= 0 {
		v.Add("product_id", domain.ViolationRequired)
	}
	switch m.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
	case "":
		v.Add("type", domain.ViolationRequired)
	default:
		v.Add("type", domain.ViolationInvalid)
	}
	v.Positive("quantity", m.Quantity)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return m, nil
}

// checkProductExists traduce un producto inexistente a error de validación.
func checkProductExists(ctx context.Context, repo repository.ProductRepository, id int64) error {
	if _, err := repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v := domain.NewValidationError()
			v.Add("product_id", domain.ViolationNotFound)
			return v
		}
		return err
	}
	return nil
}

// parseDay interpreta YYYY-MM-DD; vacío = nil.
func parseDay(v *domain.ValidationError, field, s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		v.Add(field, domain.ViolationInvalid)
		return nil
	}
	return &t
}

func toMovementResponse(m *entity.WarehouseMovement, stock *int) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Date:           m.Date,
		Type:           m.Type,
		Quantity:       m.Quantity,
		Reason:         m.Reason,
		DocumentNumber: m.DocumentNumber,
		DocumentType:   m.DocumentType,
		Notes:          m.Notes,
		StockAfter:     stock,
	}
}
