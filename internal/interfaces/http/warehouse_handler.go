package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/inventory"
)

// WarehouseHandler stock mínimo y notificaciones de almacén.
type WarehouseHandler struct {
	minimum       *inventory.MinimumStockUseCase
	notifications *inventory.NotificationUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(minimum *inventory.MinimumStockUseCase, notifications *inventory.NotificationUseCase) *WarehouseHandler {
	return &WarehouseHandler{minimum: minimum, notifications: notifications}
}

// UpsertMinimum PUT /api/minimum-stock/:productId
func (h *WarehouseHandler) UpsertMinimum(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	var in dto.MinimumStockRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.minimum.Upsert(c.UserContext(), productID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetMinimum GET /api/minimum-stock/:productId
func (h *WarehouseHandler) GetMinimum(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	out, err := h.minimum.Get(c.UserContext(), productID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteMinimum DELETE /api/minimum-stock/:productId
func (h *WarehouseHandler) DeleteMinimum(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.minimum.Delete(c.UserContext(), productID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMinimum GET /api/minimum-stock
func (h *WarehouseHandler) ListMinimum(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.minimum.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateNotification POST /api/warehouse/notifications
func (h *WarehouseHandler) CreateNotification(c *fiber.Ctx) error {
	var in dto.NotificationRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.notifications.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetNotification GET /api/warehouse/notifications/:id
func (h *WarehouseHandler) GetNotification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.notifications.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateNotification PUT /api/warehouse/notifications/:id
func (h *WarehouseHandler) UpdateNotification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.NotificationRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.notifications.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteNotification DELETE /api/warehouse/notifications/:id
func (h *WarehouseHandler) DeleteNotification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkRead POST /api/warehouse/notifications/:id/read
func (h *WarehouseHandler) MarkRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resolve POST /api/warehouse/notifications/:id/resolve
func (h *WarehouseHandler) Resolve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.Resolve(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListNotifications GET /api/warehouse/notifications?status=NEW&product_id=
func (h *WarehouseHandler) ListNotifications(c *fiber.Ctx) error {
	var in dto.NotificationListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.notifications.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
