package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite/sqlitetest"
)

var ctx = context.Background()

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *sqlite.Store
	repos    repository.Repositories
	customer *entity.Customer
	supplier *entity.Supplier
	product  *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := sqlitetest.New(t)
	f := &fixture{store: s, repos: s.Repositories()}

	f.customer = &entity.Customer{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	_, err := f.repos.Customers.Create(ctx, f.customer)
	require.NoError(t, err)

	f.supplier = &entity.Supplier{CompanyName: "Ferramenta Srl", VATNumber: "IT01234567890"}
	_, err = f.repos.Suppliers.Create(ctx, f.supplier)
	require.NoError(t, err)

	f.product = &entity.Product{
		Code: "VIT-M6", Name: "Vite M6", Price: dec("0.25"), Quantity: 100, Weight: dec("0.004"),
		VATRate: dec("22"), Active: true, SupplierID: &f.supplier.ID, MinimumQuantity: 10,
	}
	_, err = f.repos.Products.Create(ctx, f.product)
	require.NoError(t, err)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip y actualización
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomer_RoundTripYUpdate(t *testing.T) {
	f := newFixture(t)

	got, err := f.repos.Customers.GetByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, *f.customer, *got)

	got.Phone = "+39 06 1234567"
	require.NoError(t, f.repos.Customers.Update(ctx, got))
	again, err := f.repos.Customers.GetByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "+39 06 1234567", again.Phone)
}

func TestUpdate_IDInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.repos.Customers.Update(ctx, &entity.Customer{ID: 999, FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.repos.Products.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.repos.Suppliers.Delete(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_RoundTripConservaDecimalesYPunteros(t *testing.T) {
	f := newFixture(t)

	got, err := f.repos.Products.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, f.product.Code, got.Code)
	assert.Equal(t, "0.25", got.Price.String())
	assert.Equal(t, "0.004", got.Weight.String())
	assert.Equal(t, "22", got.VATRate.String())
	assert.True(t, got.AcquisitionCost.IsZero())
	assert.True(t, got.Active)
	require.NotNil(t, got.SupplierID)
	assert.Equal(t, f.supplier.ID, *got.SupplierID)

	got.SupplierID = nil
	got.Active = false
	require.NoError(t, f.repos.Products.Update(ctx, got))
	again, err := f.repos.Products.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Nil(t, again.SupplierID)
	assert.False(t, again.Active)
}

func TestProduct_ProveedorInexistenteEsConstraint(t *testing.T) {
	f := newFixture(t)
	missing := int64(999)
	_, err := f.repos.Products.Create(ctx, &entity.Product{Code: "X", Name: "X", SupplierID: &missing})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	_, err = f.repos.Products.Create(ctx, &entity.Product{Code: "X", Name: "X", VATRate: dec("101")})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestProduct_GetByCodeDevuelveElMasAntiguo(t *testing.T) {
	f := newFixture(t)
	dup := &entity.Product{Code: "VIT-M6", Name: "Duplicado"}
	_, err := f.repos.Products.Create(ctx, dup)
	require.NoError(t, err)

	got, err := f.repos.Products.GetByCode(ctx, "VIT-M6")
	require.NoError(t, err)
	assert.Equal(t, f.product.ID, got.ID)

	_, err = f.repos.Products.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIDs_NuncaSeReutilizan(t *testing.T) {
	f := newFixture(t)
	c := &entity.Customer{FirstName: "A", LastName: "B"}
	id1, err := f.repos.Customers.Create(ctx, c)
	require.NoError(t, err)
	require.NoError(t, f.repos.Customers.Delete(ctx, id1))

	id2, err := f.repos.Customers.Create(ctx, &entity.Customer{FirstName: "C", LastName: "D"})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)
}

func TestFechas_RoundTripUTCExacto(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 5, 2, 9, 30, 15, 123456789, time.UTC)
	m := &entity.WarehouseMovement{ProductID: f.product.ID, Type: entity.MovementTypeIN, Quantity: 1, Date: at}
	_, err := f.repos.Movements.Create(ctx, m)
	require.NoError(t, err)

	got, err := f.repos.Movements.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, at, got.Date)

	rome := time.FixedZone("CET", 3600)
	_, err = f.repos.Movements.Create(ctx, &entity.WarehouseMovement{
		ProductID: f.product.ID, Type: entity.MovementTypeOUT, Quantity: 1, Date: at.In(rome),
	})
	require.NoError(t, err)

	from := at.Add(-time.Second)
	list, err := f.repos.Movements.List(ctx, repository.MovementFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cabecera + líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_CreateGetYDeleteEnCascada(t *testing.T) {
	f := newFixture(t)
	o := &entity.Order{
		CustomerID: f.customer.ID, OrderDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Status: entity.OrderStatusNew,
		Items: []entity.OrderItem{
			{ProductID: f.product.ID, Quantity: 4, UnitPrice: dec("0.25")},
			{ProductID: f.product.ID, Quantity: 0, UnitPrice: dec("9.99")},
		},
	}
	o.Total = o.ComputeTotal()
	id, err := f.repos.Orders.Create(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, id, o.ID)
	assert.Equal(t, id, o.Items[1].OrderID)
	assert.NotZero(t, o.Items[1].ID)

	got, err := f.repos.Orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.CustomerName)
	assert.Equal(t, o.OrderDate, got.OrderDate)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Vite M6", got.Items[0].ProductName)
	assert.True(t, got.Items[1].Total().IsZero())
	assert.True(t, got.Total.Equal(dec("1")))

	require.NoError(t, f.repos.Orders.Delete(ctx, id))
	items, err := f.repos.Orders.ListItems(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, items)
	_, err = f.repos.Orders.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrder_LineaConProductoInexistenteNoPersisteNiAsignaIDs(t *testing.T) {
	f := newFixture(t)
	o := &entity.Order{
		CustomerID: f.customer.ID, Status: entity.OrderStatusNew,
		Items: []entity.OrderItem{
			{ProductID: f.product.ID, Quantity: 1, UnitPrice: dec("1")},
			{ProductID: 999, Quantity: 1, UnitPrice: dec("1")},
		},
	}
	_, err := f.repos.Orders.Create(ctx, o)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Zero(t, o.ID)
	assert.Zero(t, o.Items[0].ID)
	assert.Zero(t, o.Items[0].OrderID)

	list, err := f.repos.Orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSupplierOrder_FalloEnLineaNoAsignaIDs(t *testing.T) {
	f := newFixture(t)
	o := &entity.SupplierOrder{
		SupplierID: f.supplier.ID, Status: entity.SupplierOrderStatusDraft,
		Items: []entity.SupplierOrderItem{
			{ProductID: f.product.ID, Quantity: 10, UnitPrice: dec("0.08")},
			{ProductID: f.product.ID, Quantity: -1, UnitPrice: dec("0.08")},
		},
	}
	o.Recalculate()
	_, err := f.repos.SupplierOrders.Create(ctx, o)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Zero(t, o.ID)
	assert.Zero(t, o.Items[0].ID)

	o.Items = o.Items[:1]
	o.Recalculate()
	id, err := f.repos.SupplierOrders.Create(ctx, o)
	require.NoError(t, err)
	require.NoError(t, f.repos.SupplierOrders.UpdateStatus(ctx, id, entity.SupplierOrderStatusSent))
	got, err := f.repos.SupplierOrders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ferramenta Srl", got.SupplierName)
	assert.Equal(t, entity.SupplierOrderStatusSent, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "VIT-M6", got.Items[0].ProductCode)

	err = f.repos.Suppliers.Delete(ctx, f.supplier.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestInvoice_NumeroUnicoYSecuencia(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, n := range []string{"2024/0001", "2024/0007", "2023/0042", "PRO-9", "2024/X1"} {
		_, err := f.repos.Invoices.Create(ctx, &entity.Invoice{Number: n, Date: date, CustomerID: f.customer.ID, Status: "DRAFT"})
		require.NoError(t, err)
	}

	dup := &entity.Invoice{
		Number: "2024/0007", Date: date, CustomerID: f.customer.ID,
		Items: []entity.InvoiceItem{{ProductID: f.product.ID, Quantity: 1, UnitPrice: dec("1"), VATRate: dec("22")}},
	}
	_, err := f.repos.Invoices.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Zero(t, dup.ID)
	assert.Zero(t, dup.Items[0].ID)

	seq, err := f.repos.Invoices.LastNumberSequence(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	seq, err = f.repos.Invoices.LastNumberSequence(ctx, 2025)
	require.NoError(t, err)
	assert.Zero(t, seq)
}

// ──────────────────────────────────────────────────────────────────────────────
// Integridad referencial
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomer_DeleteConPedidosEsRestrict(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Orders.Create(ctx, &entity.Order{CustomerID: f.customer.ID, Status: entity.OrderStatusNew})
	require.NoError(t, err)

	err = f.repos.Customers.Delete(ctx, f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	_, err = f.repos.Customers.GetByID(ctx, f.customer.ID)
	assert.NoError(t, err)
}

func TestSupplier_DeletePoneNullYBorraListas(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repos.MinimumStock.Upsert(ctx, &entity.MinimumStock{
		ProductID: f.product.ID, MinimumQuantity: 5, PreferredSupplier: &f.supplier.ID,
	}))
	pl := &entity.SupplierPriceList{SupplierID: f.supplier.ID, ProductID: f.product.ID, Price: dec("0.10"), ValidityStart: time.Now()}
	_, err := f.repos.PriceLists.Create(ctx, pl)
	require.NoError(t, err)

	require.NoError(t, f.repos.Suppliers.Delete(ctx, f.supplier.ID))

	p, err := f.repos.Products.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Nil(t, p.SupplierID)
	ms, err := f.repos.MinimumStock.Get(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Nil(t, ms.PreferredSupplier)
	_, err = f.repos.PriceLists.GetByID(ctx, pl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_DeleteConMovimientosEsRestrict(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Movements.Create(ctx, &entity.WarehouseMovement{
		ProductID: f.product.ID, Type: entity.MovementTypeIN, Quantity: 1, Date: time.Now(),
	})
	require.NoError(t, err)

	err = f.repos.Products.Delete(ctx, f.product.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestProduct_DeleteBorraMinimoYAvisos(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repos.MinimumStock.Upsert(ctx, &entity.MinimumStock{ProductID: f.product.ID, MinimumQuantity: 5}))
	n := &entity.WarehouseNotification{ProductID: f.product.ID, Type: entity.NotificationTypeLowStock, Status: entity.NotificationStatusNew, Date: time.Now()}
	_, err := f.repos.Notifications.Create(ctx, n)
	require.NoError(t, err)

	require.NoError(t, f.repos.Products.Delete(ctx, f.product.ID))

	_, err = f.repos.MinimumStock.Get(ctx, f.product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.repos.Notifications.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovement_TipoYCantidadSonCheck(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Movements.Create(ctx, &entity.WarehouseMovement{ProductID: f.product.ID, Type: "MOVE", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	_, err = f.repos.Movements.Create(ctx, &entity.WarehouseMovement{ProductID: f.product.ID, Type: entity.MovementTypeIN, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestProduct_AdjustQuantityNoPermiteNegativo(t *testing.T) {
	f := newFixture(t)
	qty, err := f.repos.Products.AdjustQuantity(ctx, f.product.ID, -30)
	require.NoError(t, err)
	assert.Equal(t, 70, qty)

	_, err = f.repos.Products.AdjustQuantity(ctx, f.product.ID, -71)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	p, _ := f.repos.Products.GetByID(ctx, f.product.ID)
	assert.Equal(t, 70, p.Quantity)

	_, err = f.repos.Products.AdjustQuantity(ctx, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock mínimo y avisos
// ──────────────────────────────────────────────────────────────────────────────

func TestMinimumStock_UpsertReemplaza(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repos.MinimumStock.Upsert(ctx, &entity.MinimumStock{ProductID: f.product.ID, MinimumQuantity: 5, Notes: "a"}))
	require.NoError(t, f.repos.MinimumStock.Upsert(ctx, &entity.MinimumStock{ProductID: f.product.ID, MinimumQuantity: 8, LeadTimeDays: 3}))

	ms, err := f.repos.MinimumStock.Get(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, ms.MinimumQuantity)
	assert.Equal(t, 3, ms.LeadTimeDays)
	assert.Empty(t, ms.Notes)

	list, err := f.repos.MinimumStock.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	err = f.repos.MinimumStock.Upsert(ctx, &entity.MinimumStock{ProductID: 999})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestNotification_HasOpenIgnoraResueltas(t *testing.T) {
	f := newFixture(t)
	n := &entity.WarehouseNotification{ProductID: f.product.ID, Type: entity.NotificationTypeLowStock, Status: entity.NotificationStatusNew}
	_, err := f.repos.Notifications.Create(ctx, n)
	require.NoError(t, err)

	open, err := f.repos.Notifications.HasOpen(ctx, f.product.ID, entity.NotificationTypeLowStock)
	require.NoError(t, err)
	assert.True(t, open)
	open, err = f.repos.Notifications.HasOpen(ctx, f.product.ID, entity.NotificationTypeOutOfStock)
	require.NoError(t, err)
	assert.False(t, open)

	require.NoError(t, f.repos.Notifications.UpdateStatus(ctx, n.ID, entity.NotificationStatusResolved))
	open, err = f.repos.Notifications.HasOpen(ctx, f.product.ID, entity.NotificationTypeLowStock)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestPriceList_ValidOnConExtremosIncluidos(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := f.repos.PriceLists.Create(ctx, &entity.SupplierPriceList{
		SupplierID: f.supplier.ID, ProductID: f.product.ID, Price: dec("0.07"), ValidityStart: start, ValidityEnd: &end,
	})
	require.NoError(t, err)

	for _, tc := range []struct {
		on   time.Time
		want int
	}{
		{start, 1},
		{end.Add(23 * time.Hour), 1},
		{end.AddDate(0, 0, 1), 0},
		{start.Add(-time.Hour), 0},
	} {
		on := tc.on
		list, err := f.repos.PriceLists.List(ctx, repository.PriceListFilter{ValidOn: &on})
		require.NoError(t, err)
		assert.Len(t, list, tc.want, on.String())
	}

	before := start.AddDate(0, 0, -1)
	_, err = f.repos.PriceLists.Create(ctx, &entity.SupplierPriceList{
		SupplierID: f.supplier.ID, ProductID: f.product.ID, Price: dec("1"), ValidityStart: start, ValidityEnd: &before,
	})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_RollbackRestauraEstado(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")

	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Products.AdjustQuantity(ctx, f.product.ID, -50); err != nil {
			return err
		}
		if _, err := repos.Customers.Create(ctx, &entity.Customer{FirstName: "Tx", LastName: "Only"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := f.repos.Products.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Quantity)
	list, err := f.repos.Customers.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRun_CommitVisibleFuera(t *testing.T) {
	f := newFixture(t)
	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		_, err := repos.Products.AdjustQuantity(ctx, f.product.ID, 5)
		return err
	})
	require.NoError(t, err)
	p, _ := f.repos.Products.GetByID(ctx, f.product.ID)
	assert.Equal(t, 105, p.Quantity)
}

func TestRun_PedidoDentroDeTransaccionUsaSavepoint(t *testing.T) {
	f := newFixture(t)
	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		_, err := repos.Orders.Create(ctx, &entity.Order{
			CustomerID: f.customer.ID, Status: entity.OrderStatusNew,
			Items: []entity.OrderItem{{ProductID: 999, Quantity: 1, UnitPrice: dec("1")}},
		})
		require.ErrorIs(t, err, domain.ErrConstraintViolation)
		_, err = repos.Orders.Create(ctx, &entity.Order{CustomerID: f.customer.ID, Status: entity.OrderStatusNew})
		return err
	})
	require.NoError(t, err)

	list, err := f.repos.Orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestList_OrdenPorDefectoYOrdenamiento(t *testing.T) {
	repos := sqlitetest.New(t).Repositories()
	for _, name := range []string{"Verdi", "Bianchi", "Rossi"} {
		_, err := repos.Customers.Create(ctx, &entity.Customer{FirstName: "N", LastName: name})
		require.NoError(t, err)
	}

	list, err := repos.Customers.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Verdi", "Bianchi", "Rossi"}, lastNames(list))

	list, err = repos.Customers.List(ctx, repository.ListFilter{Sort: "last_name", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Verdi", "Rossi", "Bianchi"}, lastNames(list))

	list, err = repos.Customers.List(ctx, repository.ListFilter{Sort: "last_name", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rossi"}, lastNames(list))

	list, err = repos.Customers.List(ctx, repository.ListFilter{Search: "ROSS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rossi"}, lastNames(list))

	list, err = repos.Customers.List(ctx, repository.ListFilter{Sort: "no_such_column"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Verdi", "Bianchi", "Rossi"}, lastNames(list))
}

// El orden "customer" es por apellido, igual que en PostgreSQL (c.last_name).
func TestList_OrdenPorClienteUsaApellido(t *testing.T) {
	repos := sqlitetest.New(t).Repositories()
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for k, c := range []*entity.Customer{
		{FirstName: "Anna", LastName: "Zeta"},
		{FirstName: "Bruno", LastName: "Alfa"},
	} {
		_, err := repos.Customers.Create(ctx, c)
		require.NoError(t, err)
		_, err = repos.Orders.Create(ctx, &entity.Order{CustomerID: c.ID, OrderDate: date, Status: entity.OrderStatusNew})
		require.NoError(t, err)
		_, err = repos.Invoices.Create(ctx, &entity.Invoice{
			Number: []string{"2024/0001", "2024/0002"}[k], Date: date, CustomerID: c.ID, Status: entity.InvoiceStatusIssued,
		})
		require.NoError(t, err)
	}

	orders, err := repos.Orders.List(ctx, repository.OrderFilter{ListFilter: repository.ListFilter{Sort: "customer"}})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Bruno Alfa", orders[0].CustomerName)

	invoices, err := repos.Invoices.List(ctx, repository.InvoiceFilter{ListFilter: repository.ListFilter{Sort: "customer"}})
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "Bruno Alfa", invoices[0].CustomerName)

	invoices, err = repos.Invoices.List(ctx, repository.InvoiceFilter{ListFilter: repository.ListFilter{Sort: "customer", Desc: true}})
	require.NoError(t, err)
	assert.Equal(t, "Anna Zeta", invoices[0].CustomerName)
}

func TestProduct_ListSoloActivosYOrdenNumerico(t *testing.T) {
	f := newFixture(t)
	for _, p := range []*entity.Product{
		{Code: "P9", Name: "Nove", Price: dec("9")},
		{Code: "P10", Name: "Dieci", Price: dec("10")},
	} {
		_, err := f.repos.Products.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := f.repos.Products.List(ctx, repository.ProductFilter{ListFilter: repository.ListFilter{Sort: "price", Desc: true}})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"P10", "P9", "VIT-M6"}, []string{all[0].Code, all[1].Code, all[2].Code})

	active, err := f.repos.Products.List(ctx, repository.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "VIT-M6", active[0].Code)
}

func TestAnalytics_BajoMinimoYResumen(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Products.AdjustQuantity(ctx, f.product.ID, -95)
	require.NoError(t, err)

	items, err := f.repos.Analytics.ProductsBelowMinimum(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 10, items[0].MinimumQuantity)
	assert.Equal(t, "VIT-M6", items[0].Code)
	require.NotNil(t, items[0].PreferredSupplier)
	assert.Equal(t, f.supplier.ID, *items[0].PreferredSupplier)

	year := 2024
	date := time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, inv := range []*entity.Invoice{
		{Number: "2024/0001", Status: entity.InvoiceStatusIssued, Total: dec("100.10")},
		{Number: "2024/0002", Status: entity.InvoiceStatusPaid, Total: dec("0.20")},
		{Number: "2024/0003", Status: entity.InvoiceStatusDraft, Total: dec("50")},
		{Number: "2023/0009", Status: entity.InvoiceStatusIssued, Total: dec("7"), Date: date.AddDate(-1, 0, 0)},
	} {
		inv.CustomerID = f.customer.ID
		if inv.Date.IsZero() {
			inv.Date = date
		}
		_, err := f.repos.Invoices.Create(ctx, inv)
		require.NoError(t, err)
	}

	sum, err := f.repos.Analytics.Summary(ctx, year)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.LowStockProducts)
	assert.Equal(t, 1, sum.Customers)
	assert.Equal(t, 1, sum.ActiveProducts)
	assert.Equal(t, "100.3", sum.InvoicedThisYear.String())
	assert.True(t, sum.StockValue.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Fichero en disco
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_FicheroPersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestionale.db")

	s, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	_, err = s.Repositories().Customers.Create(ctx, &entity.Customer{FirstName: "Mario", LastName: "Rossi"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(), "migrar dos veces no es error")

	mg, err := s.Migrator()
	require.NoError(t, err)
	v, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	list, err := s.Repositories().Customers.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rossi", list[0].LastName)
	require.NoError(t, s.Ping(ctx))
}

func lastNames(list []*entity.Customer) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.LastName)
	}
	return out
}
