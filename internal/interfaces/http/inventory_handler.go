package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/inventory"
)

// InventoryHandler movimientos de almacén y lista de reposición.
type InventoryHandler struct {
	movements     *inventory.MovementUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de almacén
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, type (IN|OUT), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouse/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.movements.RegisterMovement(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMovement GET /api/warehouse/movements/:id
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.movements.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateMovement PUT /api/warehouse/movements/:id
func (h *InventoryHandler) UpdateMovement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.MovementRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.movements.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteMovement DELETE /api/warehouse/movements/:id
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.movements.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements GET /api/warehouse/movements?product_id=&type=&from=&to=
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.movements.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo el mínimo con cantidad sugerida, proveedor y mejor precio vigente.
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentItemDTO
// @Router       /api/warehouse/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
