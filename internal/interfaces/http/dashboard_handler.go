package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/gestionale-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del panel.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve contadores, facturado del año y valor del stock.
// GET /api/dashboard?year=2024
//
// Sin year se usa el año en curso.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), c.QueryInt("year"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
