package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/inventory"
	"github.com/jhoicas/gestionale-api/internal/application/purchasing"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite/sqlitetest"
)

var (
	ctx    = context.Background()
	limits = dto.Limits{Default: 50, Max: 500}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	repos    repository.Repositories
	orders   *purchasing.SupplierOrderUseCase
	prices   *purchasing.PriceListUseCase
	supplier *entity.Supplier
	screw    *entity.Product
	bolt     *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := sqlitetest.New(t)
	f := &fixture{repos: store.Repositories()}
	movements := inventory.NewMovementUseCase(store, f.repos, limits, nil)
	f.orders = purchasing.NewSupplierOrderUseCase(store, f.repos, movements, limits)
	f.prices = purchasing.NewPriceListUseCase(f.repos, limits)

	f.supplier = &entity.Supplier{CompanyName: "Ferramenta Srl"}
	_, err := f.repos.Suppliers.Create(ctx, f.supplier)
	require.NoError(t, err)
	f.screw = &entity.Product{Code: "VIT-M6", Name: "Vite M6", Quantity: 5, Active: true}
	_, err = f.repos.Products.Create(ctx, f.screw)
	require.NoError(t, err)
	f.bolt = &entity.Product{Code: "BUL-M8", Name: "Bullone M8", Quantity: 0, Active: true}
	_, err = f.repos.Products.Create(ctx, f.bolt)
	require.NoError(t, err)
	return f
}

func (f *fixture) newOrder(t *testing.T) *dto.SupplierOrderResponse {
	t.Helper()
	out, err := f.orders.Create(ctx, dto.SupplierOrderRequest{
		SupplierID: f.supplier.ID,
		Notes:      "consegna urgente",
		Items: []dto.SupplierOrderItemRequest{
			{ProductID: f.screw.ID, Quantity: 1000, UnitPrice: dec("0.08")},
			{ProductID: f.bolt.ID, Quantity: 200, UnitPrice: dec("0.30")},
		},
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) qty(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.repos.Products.GetByID(ctx, id)
	require.NoError(t, err)
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos a proveedor
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierOrder_CreateCalculaTotales(t *testing.T) {
	f := newFixture(t)
	out := f.newOrder(t)

	assert.Equal(t, entity.SupplierOrderStatusDraft, out.Status)
	assert.Equal(t, "Ferramenta Srl", out.SupplierName)
	require.Len(t, out.Items, 2)
	assert.True(t, dec("80").Equal(out.Items[0].Total))
	assert.True(t, dec("140").Equal(out.Total), out.Total.String())

	items, err := f.orders.ListItems(ctx, out.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSupplierOrder_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.Create(ctx, dto.SupplierOrderRequest{
		SupplierID: 999,
		Status:     entity.SupplierOrderStatusReceived,
		Items:      []dto.SupplierOrderItemRequest{{ProductID: 999, Quantity: 0, UnitPrice: dec("-1")}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"status":              domain.ViolationInvalid,
		"supplier_id":         domain.ViolationNotFound,
		"items[0].quantity":   domain.ViolationPositive,
		"items[0].unit_price": domain.ViolationNegative,
		"items[0].product_id": domain.ViolationNotFound,
	}, verr.Fields)
}

func TestSupplierOrder_ReceiveCargaStockUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t)

	got, err := f.orders.Receive(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierOrderStatusReceived, got.Status)
	assert.Equal(t, 1005, f.qty(t, f.screw.ID))
	assert.Equal(t, 200, f.qty(t, f.bolt.ID))

	movs, err := f.repos.Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeIN, m.Type)
		assert.Equal(t, purchasing.DocumentTypeSupplierOrder, m.DocumentType)
	}

	_, err = f.orders.Receive(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1005, f.qty(t, f.screw.ID))

	_, err = f.orders.Update(ctx, order.ID, dto.SupplierOrderRequest{SupplierID: f.supplier.ID, Items: []dto.SupplierOrderItemRequest{{ProductID: f.screw.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSupplierOrder_ReceiveCanceladoEsConflicto(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t)
	_, err := f.orders.Update(ctx, order.ID, dto.SupplierOrderRequest{
		SupplierID: f.supplier.ID,
		Status:     "cancelled",
		Items:      []dto.SupplierOrderItemRequest{{ProductID: f.screw.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	_, err = f.orders.Receive(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, f.qty(t, f.screw.ID))

	_, err = f.orders.Receive(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierOrder_DeleteYSupplierRestringido(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t)

	err := f.repos.Suppliers.Delete(ctx, f.supplier.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	require.NoError(t, f.orders.Delete(ctx, order.ID))
	_, err = f.orders.GetByID(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.orders.List(ctx, dto.SupplierOrderListRequest{SupplierID: f.supplier.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listas de precios
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceList_ValidacionDeVigencia(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := f.prices.Create(ctx, dto.PriceListRequest{
		SupplierID:      f.supplier.ID,
		ProductID:       f.screw.ID,
		Price:           dec("-0.1"),
		MinimumQuantity: -5,
		ValidityStart:   start,
		ValidityEnd:     &end,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"price":            domain.ViolationNegative,
		"minimum_quantity": domain.ViolationNegative,
		"validity_end":     domain.ViolationBeforeStart,
	}, verr.Fields)

	_, err = f.prices.Create(ctx, dto.PriceListRequest{SupplierID: f.supplier.ID, ProductID: f.screw.ID, Price: dec("0.1")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ViolationRequired, verr.Fields["validity_start"])
}

func TestPriceList_CRUDYFiltroVigente(t *testing.T) {
	f := newFixture(t)
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endJan := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	old, err := f.prices.Create(ctx, dto.PriceListRequest{
		SupplierID: f.supplier.ID, ProductID: f.screw.ID, SupplierProductCode: "FS-6",
		Price: dec("0.07"), ValidityStart: jan, ValidityEnd: &endJan,
	})
	require.NoError(t, err)
	current, err := f.prices.Create(ctx, dto.PriceListRequest{
		SupplierID: f.supplier.ID, ProductID: f.screw.ID, SupplierProductCode: "FS-6",
		Price: dec("0.08"), ValidityStart: endJan.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	list, err := f.prices.List(ctx, dto.PriceListListRequest{ProductID: f.screw.ID, ValidOn: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, old.ID, list.Items[0].ID)

	list, err = f.prices.List(ctx, dto.PriceListListRequest{ValidOn: "2024-03-01"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, current.ID, list.Items[0].ID)

	_, err = f.prices.List(ctx, dto.PriceListListRequest{ValidOn: "marzo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := f.prices.Update(ctx, current.ID, dto.PriceListRequest{
		SupplierID: f.supplier.ID, ProductID: f.screw.ID, Price: dec("0.09"), ValidityStart: jan,
	})
	require.NoError(t, err)
	assert.True(t, dec("0.09").Equal(upd.Price))

	require.NoError(t, f.prices.Delete(ctx, old.ID))
	_, err = f.prices.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
