package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// OrderRepo: cabecera + líneas en una transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderRepo_CreatePersisteCabeceraYLineas(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	o := &entity.Order{
		CustomerID: 1, OrderDate: date, Status: entity.OrderStatusNew,
		Items: []entity.OrderItem{
			{ProductID: 10, Quantity: 2, UnitPrice: decimal.RequireFromString("5.50")},
			{ProductID: 11, Quantity: 1, UnitPrice: decimal.RequireFromString("3")},
		},
	}
	o.Total = o.ComputeTotal()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(int64(1), date, entity.OrderStatusNew, o.Total).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(5), int64(10), 2, o.Items[0].UnitPrice).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(5), int64(11), 1, o.Items[1].UnitPrice).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, int64(5), o.Items[1].OrderID)
	assert.Equal(t, int64(101), o.Items[1].ID)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("14")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateHaceRollbackSiFallaUnaLinea(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)

	o := &entity.Order{
		CustomerID: 1, Status: entity.OrderStatusNew,
		Items: []entity.OrderItem{{ProductID: 999, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(int64(1), pgxmock.AnyArg(), entity.OrderStatusNew, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(6)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(6), int64(999), 1, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), o)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Zero(t, o.ID, "sin commit no se asigna ID a la cabecera")
	assert.Zero(t, o.Items[0].ID)
	assert.Zero(t, o.Items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CommitFallidoNoAsignaIDs(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)

	o := &entity.Order{
		CustomerID: 1, Status: entity.OrderStatusNew,
		Items: []entity.OrderItem{{ProductID: 10, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(7), int64(10), 1, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(70)))
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "08006"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), o)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Zero(t, o.ID)
	assert.Zero(t, o.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_UpdateFallidoConservaIDsDeLineas(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)

	o := &entity.Order{
		ID: 5, CustomerID: 1, Status: entity.OrderStatusNew,
		Items: []entity.OrderItem{{ID: 100, OrderID: 5, ProductID: 10, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
		WithArgs(int64(5), int64(1), pgxmock.AnyArg(), entity.OrderStatusNew, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_items WHERE order_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(5), int64(10), 1, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23514"})
	mock.ExpectRollback()

	err := repo.Update(context.Background(), o)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Equal(t, int64(100), o.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListOrdenPorClienteUsaApellido(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.last_name ASC, o.id")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer_id", "name", "order_date", "status", "total"}).
			AddRow(int64(2), int64(2), "Bruno Alfa", date, "NEW", decimal.Zero).
			AddRow(int64(1), int64(1), "Anna Zeta", date, "NEW", decimal.Zero))

	list, err := repo.List(context.Background(), repository.OrderFilter{
		ListFilter: repository.ListFilter{Sort: "customer"},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bruno Alfa", list[0].CustomerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_DeleteEliminaLineasYCabecera(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_items WHERE order_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_DeleteInexistenteNoConfirma(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_items")).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders")).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByIDCargaLineas(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOrderRepository(mock)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders o LEFT JOIN customers c")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer_id", "name", "order_date", "status", "total"}).
			AddRow(int64(5), int64(1), "Mario Rossi", date, "NEW", decimal.NewFromInt(11)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items i")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "product_id", "name", "quantity", "unit_price"}).
			AddRow(int64(100), int64(5), int64(10), "Vite M6", 2, decimal.RequireFromString("5.50")))

	o, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Mario Rossi", o.CustomerName)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Vite M6", o.Items[0].ProductName)
	assert.True(t, o.ComputeTotal().Equal(decimal.NewFromInt(11)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// InvoiceRepo / ProductRepo / TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceRepo_LastNumberSequence(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM invoices")).
		WithArgs(2024).
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(12))

	seq, err := repo.LastNumberSequence(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 12, seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_NumeroDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)

	inv := &entity.Invoice{Number: "2024/0001", CustomerID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices")).
		WithArgs("2024/0001", pgxmock.AnyArg(), int64(1),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), inv)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Zero(t, inv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_FalloEnLineaNoAsignaIDs(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)

	inv := &entity.Invoice{
		Number: "2024/0002", CustomerID: 1,
		Items: []entity.InvoiceItem{{ProductID: 999, Quantity: 1}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices")).
		WithArgs("2024/0002", pgxmock.AnyArg(), int64(1),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoice_items")).
		WithArgs(int64(3), int64(999), 1, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), inv)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Zero(t, inv.ID)
	assert.Zero(t, inv.Items[0].InvoiceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_ListOrdenPorClienteDescendente(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.last_name DESC, i.id")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "number", "date", "customer_id", "name",
			"taxable_amount", "vat", "total", "status"}).
			AddRow(int64(1), "2024/0001", date, int64(1), "Anna Zeta",
				decimal.Zero, decimal.Zero, decimal.Zero, "ISSUED"))

	list, err := repo.List(context.Background(), repository.InvoiceFilter{
		ListFilter: repository.ListFilter{Sort: "customer", Desc: true},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Anna Zeta", list[0].CustomerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_AdjustQuantityDevuelveStockResultante(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET quantity = quantity + $2")).
		WithArgs(int64(4), -3).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(7))

	qty, err := repo.AdjustQuantity(context.Background(), 4, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, qty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollbackCuandoFnFalla(t *testing.T) {
	mock := newMock(t)
	runner := postgres.NewTxRunner(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers")).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectRollback()

	err := runner.Run(context.Background(), func(repos repository.Repositories) error {
		if err := repos.Customers.Delete(context.Background(), 1); err != nil {
			return err
		}
		return domain.ErrConflict
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
