package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierPriceList precio de un producto ofrecido por un proveedor en un periodo.
type SupplierPriceList struct {
	ID                  int64
	SupplierID          int64
	ProductID           int64
	SupplierProductCode string
	Price               decimal.Decimal
	MinimumQuantity     int
	ValidityStart       time.Time
	ValidityEnd         *time.Time // nil = sin fecha de fin
	Notes               string
}

// ValidOn indica si el precio está vigente en la fecha dada (comparación por día).
func (p SupplierPriceList) ValidOn(day time.Time) bool {
	d := truncateDay(day)
	if d.Before(truncateDay(p.ValidityStart)) {
		return false
	}
	if p.ValidityEnd != nil && d.After(truncateDay(*p.ValidityEnd)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
