// Package analytics contiene el resumen del panel principal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del panel.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO. year <= 0 usa el año en curso.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, year int) (*dto.DashboardSummaryDTO, error) {
	if year <= 0 {
		year = uc.now().Year()
	}
	s, err := uc.analyticsRepo.Summary(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen %d: %w", year, err)
	}
	return &dto.DashboardSummaryDTO{
		Year:                year,
		Customers:           s.Customers,
		ActiveProducts:      s.ActiveProducts,
		LowStockProducts:    s.LowStockProducts,
		OpenOrders:          s.OpenOrders,
		UnreadNotifications: s.UnreadNotifications,
		InvoicedThisYear:    s.InvoicedThisYear.Round(2),
		StockValue:          s.StockValue.Round(2),
	}, nil
}
