package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reposición y panel. Los importes se
// suman en Go: en SQLite son TEXT y SUM los pasaría por coma flotante.
type AnalyticsRepo struct {
	db *gorm.DB
}

const belowMinimumFrom = `
	FROM products p
	LEFT JOIN minimum_stock ms ON ms.product_id = p.id
	WHERE p.active
	  AND COALESCE(ms.minimum_quantity, p.minimum_quantity) > 0
	  AND p.quantity <= COALESCE(ms.minimum_quantity, p.minimum_quantity)`

// ProductsBelowMinimum productos activos cuyo stock no supera su mínimo.
// El mínimo de minimum_stock tiene prioridad sobre products.minimum_quantity; el proveedor
// preferido cae en products.supplier_id cuando no está configurado.
func (r *AnalyticsRepo) ProductsBelowMinimum(ctx context.Context) ([]repository.BelowMinimumItem, error) {
	const query = `
	SELECT
	    p.id                                                AS product_id,
	    p.code                                              AS code,
	    p.name                                              AS name,
	    p.quantity                                          AS quantity,
	    COALESCE(ms.minimum_quantity, p.minimum_quantity)   AS minimum_quantity,
	    COALESCE(ms.reorder_quantity, 0)                    AS reorder_quantity,
	    COALESCE(ms.lead_time_days, 0)                      AS lead_time_days,
	    COALESCE(ms.preferred_supplier, p.supplier_id)      AS preferred_supplier,
	    p.acquisition_cost                                  AS acquisition_cost` +
		belowMinimumFrom + `
	ORDER BY (COALESCE(ms.minimum_quantity, p.minimum_quantity) - p.quantity) DESC, p.id`

	var items []repository.BelowMinimumItem
	if err := r.db.WithContext(ctx).Raw(query).Scan(&items).Error; err != nil {
		return nil, mapError("analytics.ProductsBelowMinimum", err)
	}
	return items, nil
}

// Summary métricas del panel. InvoicedThisYear excluye facturas DRAFT y CANCELLED.
func (r *AnalyticsRepo) Summary(ctx context.Context, year int) (*repository.Summary, error) {
	const counts = `
	SELECT
	    (SELECT COUNT(*) FROM customers)                                     AS customers,
	    (SELECT COUNT(*) FROM products WHERE active)                         AS active_products,
	    (SELECT COUNT(*)` + belowMinimumFrom + `)                           AS low_stock_products,
	    (SELECT COUNT(*) FROM orders WHERE status IN (?, ?))                 AS open_orders,
	    (SELECT COUNT(*) FROM warehouse_notifications WHERE status = ?)      AS unread_notifications`

	db := r.db.WithContext(ctx)
	var s repository.Summary
	err := db.Raw(counts,
		entity.OrderStatusNew, entity.OrderStatusProcessing, entity.NotificationStatusNew,
	).Scan(&s).Error
	if err != nil {
		return nil, mapError("analytics.Summary", err)
	}
	s.InvoicedThisYear, s.StockValue = decimal.Zero, decimal.Zero

	var totals []string
	err = db.Model(&invoiceRow{}).
		Where("substr(date, 1, 4) = ? AND status NOT IN (?, ?)", yearPrefix(year), entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled).
		Pluck("total", &totals).Error
	if err != nil {
		return nil, mapError("analytics.Summary invoiced", err)
	}
	for _, t := range totals {
		v, err := decimal.NewFromString(t)
		if err != nil {
			return nil, fmt.Errorf("analytics.Summary invoice total %q: %w", t, err)
		}
		s.InvoicedThisYear = s.InvoicedThisYear.Add(v)
	}

	var stock []struct {
		Quantity        int
		AcquisitionCost decimal.Decimal
	}
	err = db.Model(&productRow{}).Select("quantity, acquisition_cost").Where("active = ?", true).Scan(&stock).Error
	if err != nil {
		return nil, mapError("analytics.Summary stock", err)
	}
	for _, p := range stock {
		s.StockValue = s.StockValue.Add(p.AcquisitionCost.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return &s, nil
}
