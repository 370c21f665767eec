package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestionale-api/internal/application/analytics"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite/sqlitetest"
)

type failingAnalytics struct{ repository.AnalyticsRepository }

func (failingAnalytics) Summary(context.Context, int) (*repository.Summary, error) {
	return nil, domain.ErrStorageUnavailable
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen del panel
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_AgregaContadores(t *testing.T) {
	ctx := context.Background()
	repos := sqlitetest.New(t).Repositories()

	_, err := repos.Customers.Create(ctx, &entity.Customer{FirstName: "Mario", LastName: "Rossi"})
	require.NoError(t, err)
	low := &entity.Product{Code: "A", Name: "Vite", Quantity: 2, MinimumQuantity: 5, AcquisitionCost: decimal.RequireFromString("1.50"), Active: true}
	_, err = repos.Products.Create(ctx, low)
	require.NoError(t, err)
	_, err = repos.Products.Create(ctx, &entity.Product{Code: "B", Name: "Dado", Quantity: 10, AcquisitionCost: decimal.RequireFromString("0.25"), Active: true})
	require.NoError(t, err)
	_, err = repos.Products.Create(ctx, &entity.Product{Code: "C", Name: "Fuori catalogo", Quantity: 100, Active: false})
	require.NoError(t, err)
	_, err = repos.Notifications.Create(ctx, &entity.WarehouseNotification{ProductID: low.ID, Type: entity.NotificationTypeLowStock, Status: entity.NotificationStatusNew})
	require.NoError(t, err)

	out, err := analytics.NewDashboardUseCase(repos.Analytics).GetSummary(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, out.Year)
	assert.Equal(t, 1, out.Customers)
	assert.Equal(t, 2, out.ActiveProducts)
	assert.Equal(t, 1, out.LowStockProducts)
	assert.Equal(t, 1, out.UnreadNotifications)
	assert.True(t, decimal.RequireFromString("5.50").Equal(out.StockValue), out.StockValue.String())
	assert.True(t, out.InvoicedThisYear.IsZero())
}

func TestGetSummary_AnioPorDefecto(t *testing.T) {
	out, err := analytics.NewDashboardUseCase(sqlitetest.New(t).Repositories().Analytics).GetSummary(context.Background(), 0)
	require.NoError(t, err)
	assert.Positive(t, out.Year)
}

func TestGetSummary_PropagaErrorDeAlmacenamiento(t *testing.T) {
	_, err := analytics.NewDashboardUseCase(failingAnalytics{}).GetSummary(context.Background(), 2024)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}
