package postgres_test

import (
	"context"
	"regexp"
	"testing"

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

var productCols = []string{"id", "code", "name", "description", "price", "quantity", "category",
	"alternative_sku", "weight", "unit_of_measure", "minimum_quantity", "acquisition_cost", "active",
	"supplier_id", "warehouse_position", "vat_rate"}

// ──────────────────────────────────────────────────────────────────────────────
// SupplierRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierRepo_CreateAsignaID(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewSupplierRepository(mock)

	s := &entity.Supplier{CompanyName: "Ferramenta Srl", VATNumber: "IT01234567890", Email: "info@ferr.it"}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO suppliers")).
		WithArgs("Ferramenta Srl", "IT01234567890", "", "", "", "info@ferr.it", "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

	id, err := repo.Create(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, int64(3), s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierRepo_UpdateInexistenteDevuelveNotFound(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewSupplierRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE suppliers")).
		WithArgs(int64(9), "X", "", "", "", "", "", "", "", "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.Supplier{ID: 9, CompanyName: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierRepo_DeleteConPedidosEsRestrict(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewSupplierRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM suppliers WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "supplier_orders_supplier_id_fkey"})

	err := repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierRepo_DeleteUnaFila(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewSupplierRepository(mock)

	// productos (SET NULL) y listas de precios (CASCADE) los resuelve la base
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM suppliers WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_CreatePasaTodosLosCampos(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	supplier := int64(2)
	p := &entity.Product{
		Code: "VIT-M6", Name: "Vite M6", Price: decimal.RequireFromString("0.25"), Quantity: 100,
		Category: "viteria", Weight: decimal.RequireFromString("0.004"), UnitOfMeasure: "pz",
		MinimumQuantity: 10, AcquisitionCost: decimal.RequireFromString("0.10"), Active: true,
		SupplierID: &supplier, WarehousePosition: "A-01", VATRate: decimal.NewFromInt(22),
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("VIT-M6", "Vite M6", "", p.Price, 100, "viteria", "", p.Weight,
			"pz", 10, p.AcquisitionCost, true, &supplier, "A-01", p.VATRate).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))

	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_CreateCodigoDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	p := &entity.Product{Code: "VIT-M6", Name: "Vite M6"}
	_, err := repo.Create(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Zero(t, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetByIDConProveedor(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	supplier := int64(2)
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(12)).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(12), "VIT-M6", "Vite M6", "", decimal.RequireFromString("0.25"), 100, "viteria",
				"", decimal.Zero, "pz", 10, decimal.RequireFromString("0.10"), true,
				&supplier, "A-01", decimal.NewFromInt(22)))

	p, err := repo.GetByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "VIT-M6", p.Code)
	require.NotNil(t, p.SupplierID)
	assert.Equal(t, int64(2), *p.SupplierID)
	assert.Equal(t, "22", p.VATRate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_UpdateInexistenteDevuelveNotFound(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
		WithArgs(int64(77), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.Product{ID: 77, Code: "X", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_SetActiveInexistente(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET active = $2 WHERE id = $1")).
		WithArgs(int64(5), false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetActive(context.Background(), 5, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_DeleteConMovimientosEsRestrict(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(12)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Delete(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_AdjustQuantityNegativoEsCheck(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET quantity = quantity + $2")).
		WithArgs(int64(4), -50).
		WillReturnError(&pgconn.PgError{Code: "23514"})

	_, err := repo.AdjustQuantity(context.Background(), 4, -50)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_ListSoloActivosPorCategoria(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE active = TRUE AND category = $1") + ".*" +
		regexp.QuoteMeta("ORDER BY name DESC, id LIMIT $2")).
		WithArgs("viteria", 5).
		WillReturnRows(pgxmock.NewRows(productCols))

	list, err := repo.List(context.Background(), repository.ProductFilter{
		ListFilter: repository.ListFilter{Sort: "name", Desc: true, Limit: 5},
		ActiveOnly: true,
		Category:   "viteria",
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
