package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/purchasing"
)

// PurchasingHandler pedidos a proveedor y listas de precios.
type PurchasingHandler struct {
	orders *purchasing.SupplierOrderUseCase
	prices *purchasing.PriceListUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(orders *purchasing.SupplierOrderUseCase, prices *purchasing.PriceListUseCase) *PurchasingHandler {
	return &PurchasingHandler{orders: orders, prices: prices}
}

// ── Pedidos a proveedor ───────────────────────────────────────────────────────

// CreateOrder POST /api/supplier-orders
func (h *PurchasingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.SupplierOrderRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.orders.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOrder GET /api/supplier-orders/:id
func (h *PurchasingHandler) GetOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.orders.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateOrder PUT /api/supplier-orders/:id
func (h *PurchasingHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.SupplierOrderRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.orders.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteOrder DELETE /api/supplier-orders/:id
func (h *PurchasingHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.orders.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOrders GET /api/supplier-orders?supplier_id=&status=
func (h *PurchasingHandler) ListOrders(c *fiber.Ctx) error {
	var in dto.SupplierOrderListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.orders.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListOrderItems GET /api/supplier-orders/:id/items
func (h *PurchasingHandler) ListOrderItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.orders.ListItems(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ReceiveOrder POST /api/supplier-orders/:id/receive
func (h *PurchasingHandler) ReceiveOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.orders.Receive(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ── Listas de precios ─────────────────────────────────────────────────────────

// CreatePrice POST /api/price-lists
func (h *PurchasingHandler) CreatePrice(c *fiber.Ctx) error {
	var in dto.PriceListRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.prices.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPrice GET /api/price-lists/:id
func (h *PurchasingHandler) GetPrice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.prices.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdatePrice PUT /api/price-lists/:id
func (h *PurchasingHandler) UpdatePrice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.PriceListRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.prices.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeletePrice DELETE /api/price-lists/:id
func (h *PurchasingHandler) DeletePrice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.prices.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPrices GET /api/price-lists?supplier_id=&product_id=&valid_on=YYYY-MM-DD
func (h *PurchasingHandler) ListPrices(c *fiber.Ctx) error {
	var in dto.PriceListListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.prices.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
