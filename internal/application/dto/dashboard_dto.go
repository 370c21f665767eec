package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	Year                int             `json:"year"`
	Customers           int             `json:"customers"`
	ActiveProducts      int             `json:"active_products"`
	LowStockProducts    int             `json:"low_stock_products"`
	OpenOrders          int             `json:"open_orders"`
	UnreadNotifications int             `json:"unread_notifications"`
	InvoicedThisYear    decimal.Decimal `json:"invoiced_this_year"`
	StockValue          decimal.Decimal `json:"stock_value"`
}
