package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reposición y panel.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ProductsBelowMinimum productos activos cuyo stock no supera su mínimo.
// El mínimo de minimum_stock tiene prioridad sobre products.minimum_quantity; el proveedor
// preferido cae en products.supplier_id cuando no está configurado.
func (r *AnalyticsRepo) ProductsBelowMinimum(ctx context.Context) ([]repository.BelowMinimumItem, error) {
	const query = `
	SELECT
	    p.id,
	    p.code,
	    p.name,
	    p.quantity,
	    COALESCE(ms.minimum_quantity, p.minimum_quantity)   AS minimum_quantity,
	    COALESCE(ms.reorder_quantity, 0)                    AS reorder_quantity,
	    COALESCE(ms.lead_time_days, 0)                      AS lead_time_days,
	    COALESCE(ms.preferred_supplier, p.supplier_id)      AS preferred_supplier,
	    p.acquisition_cost
	FROM products p
	LEFT JOIN minimum_stock ms ON ms.product_id = p.id
	WHERE p.active
	  AND COALESCE(ms.minimum_quantity, p.minimum_quantity) > 0
	  AND p.quantity <= COALESCE(ms.minimum_quantity, p.minimum_quantity)
	ORDER BY (COALESCE(ms.minimum_quantity, p.minimum_quantity) - p.quantity) DESC, p.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("analytics.ProductsBelowMinimum", err)
	}
	defer rows.Close()

	var results []repository.BelowMinimumItem
	for rows.Next() {
		var it repository.BelowMinimumItem
		if err := rows.Scan(
			&it.ProductID,
			&it.Code,
			&it.Name,
			&it.Quantity,
			&it.MinimumQuantity,
			&it.ReorderQuantity,
			&it.LeadTimeDays,
			&it.PreferredSupplier,
			&it.AcquisitionCost,
		); err != nil {
			return nil, fmt.Errorf("analytics.ProductsBelowMinimum scan: %w", err)
		}
		results = append(results, it)
	}
	return results, mapError("analytics.ProductsBelowMinimum", rows.Err())
}

// Summary métricas del panel. InvoicedThisYear excluye facturas DRAFT y CANCELLED.
func (r *AnalyticsRepo) Summary(ctx context.Context, year int) (*repository.Summary, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM customers)                                              AS customers,
	    (SELECT COUNT(*) FROM products WHERE active)                                  AS active_products,
	    (SELECT COUNT(*) FROM products p
	        LEFT JOIN minimum_stock ms ON ms.product_id = p.id
	        WHERE p.active
	          AND COALESCE(ms.minimum_quantity, p.minimum_quantity) > 0
	          AND p.quantity <= COALESCE(ms.minimum_quantity, p.minimum_quantity))    AS low_stock,
	    (SELECT COUNT(*) FROM orders WHERE status IN ('NEW', 'PROCESSING'))           AS open_orders,
	    (SELECT COUNT(*) FROM warehouse_notifications WHERE status = 'NEW')           AS unread_notifications,
	    (SELECT COALESCE(SUM(total), 0) FROM invoices
	        WHERE EXTRACT(YEAR FROM date) = $1
	          AND status NOT IN ('DRAFT', 'CANCELLED'))                               AS invoiced,
	    (SELECT COALESCE(SUM(quantity * acquisition_cost), 0) FROM products WHERE active) AS stock_value`

	var s repository.Summary
	err := r.q.QueryRow(ctx, query, year).Scan(
		&s.Customers,
		&s.ActiveProducts,
		&s.LowStockProducts,
		&s.OpenOrders,
		&s.UnreadNotifications,
		&s.InvoicedThisYear,
		&s.StockValue,
	)
	if err != nil {
		return nil, mapError("analytics.Summary", err)
	}
	return &s, nil
}
