package dto

import "github.com/shopspring/decimal"

// ReplenishmentItemDTO producto en o bajo su mínimo con la sugerencia de reposición.
type ReplenishmentItemDTO struct {
	ProductID         int64            `json:"product_id"`
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	Quantity          int              `json:"quantity"`
	MinimumQuantity   int              `json:"minimum_quantity"`
	Deficit           int              `json:"deficit"`            // mínimo - stock
	SuggestedQuantity int              `json:"suggested_quantity"` // max(reorder, deficit)
	LeadTimeDays      int              `json:"lead_time_days"`
	SupplierID        *int64           `json:"supplier_id"`
	SupplierName      string           `json:"supplier_name,omitempty"`
	BestPrice         *decimal.Decimal `json:"best_price,omitempty"` // mejor precio vigente del proveedor
	EstimatedCost     decimal.Decimal  `json:"estimated_cost"`
}
