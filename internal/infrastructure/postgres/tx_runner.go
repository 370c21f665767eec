package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// Ensure TxRunner implements repository.TxRunner.
var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	q Querier
}

// NewTxRunner construye el runner con el pool (o cualquier Querier).
func NewTxRunner(q Querier) *TxRunner {
	return &TxRunner{q: q}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return withTx(ctx, r.q, func(tx Querier) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories construye todos los adaptadores sobre el mismo Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Customers:      NewCustomerRepository(q),
		Products:       NewProductRepository(q),
		Suppliers:      NewSupplierRepository(q),
		Orders:         NewOrderRepository(q),
		Invoices:       NewInvoiceRepository(q),
		SupplierOrders: NewSupplierOrderRepository(q),
		PriceLists:     NewPriceListRepository(q),
		MinimumStock:   NewMinimumStockRepository(q),
		Movements:      NewWarehouseMovementRepository(q),
		Notifications:  NewNotificationRepository(q),
		Analytics:      NewAnalyticsRepository(q),
	}
}
