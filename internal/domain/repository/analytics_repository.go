package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// BelowMinimumItem resultado crudo para un producto en o bajo su stock mínimo.
// El mínimo viene de minimum_stock si existe; si no, de products.minimum_quantity.
type BelowMinimumItem struct {
	ProductID         int64
	Code              string
	Name              string
	Quantity          int
	MinimumQuantity   int
	ReorderQuantity   int
	LeadTimeDays      int
	PreferredSupplier *int64
	AcquisitionCost   decimal.Decimal
}

// Summary métricas agregadas del panel.
type Summary struct {
	Customers           int
	ActiveProducts      int
	LowStockProducts    int
	OpenOrders          int
	UnreadNotifications int
	InvoicedThisYear    decimal.Decimal
	StockValue          decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura que cruzan varias tablas.
type AnalyticsRepository interface {
	// ProductsBelowMinimum productos activos con stock <= mínimo (> 0), mayor déficit primero.
	ProductsBelowMinimum(ctx context.Context) ([]BelowMinimumItem, error)
	Summary(ctx context.Context, year int) (*Summary, error)
}
