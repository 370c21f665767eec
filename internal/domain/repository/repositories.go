package repository

import "context"

// Repositories agrupa los repositorios atados a una misma conexión o transacción.
type Repositories struct {
	Customers      CustomerRepository
	Products       ProductRepository
	Suppliers      SupplierRepository
	Orders         OrderRepository
	Invoices       InvoiceRepository
	SupplierOrders SupplierOrderRepository
	PriceLists     PriceListRepository
	MinimumStock   MinimumStockRepository
	Movements      WarehouseMovementRepository
	Notifications  NotificationRepository
	Analytics      AnalyticsRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
