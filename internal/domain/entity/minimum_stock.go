package entity

// MinimumStock parámetros de reposición de un producto (uno por producto).
type MinimumStock struct {
	ProductID         int64
	MinimumQuantity   int
	ReorderQuantity   int
	LeadTimeDays      int
	PreferredSupplier *int64 // opcional
	Notes             string
}
