package legacyimport_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/usecase"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite/sqlitetest"
	"github.com/jhoicas/gestionale-api/internal/legacyimport"
)

type fixture struct {
	customers *usecase.CustomerUseCase
	products  *usecase.ProductUseCase
	suppliers *usecase.SupplierUseCase
	importer  *legacyimport.Importer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := sqlitetest.New(t).Repositories()
	limits := dto.Limits{Default: 50, Max: 500}
	f := &fixture{
		customers: usecase.NewCustomerUseCase(repos.Customers, limits),
		products:  usecase.NewProductUseCase(repos.Products, repos.Suppliers, usecase.ProductPolicy{UniqueCode: true}, limits),
		suppliers: usecase.NewSupplierUseCase(repos.Suppliers, limits),
	}
	f.importer = legacyimport.NewImporter(f.customers, f.products, f.suppliers, nil)
	return f
}

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func TestImport_ClientesLatin1ConFilaInvalida(t *testing.T) {
	f := newFixture(t)
	data := latin1(t, "first_name;last_name;email\nNiccolò;Bianchi;n@b.it\n;Senza Nome;x@y.it\nLucia;Verdi;\n")

	res, err := f.importer.Import(context.Background(), legacyimport.KindCustomers, bytes.NewReader(data), legacyimport.Options{Encoding: "iso-8859-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Line)
	assert.True(t, errors.Is(res.Errors[0], domain.ErrInvalidInput))

	list, err := f.customers.List(context.Background(), dto.PageRequest{Sort: "first_name", Dir: "asc"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Lucia", list.Items[0].FirstName)
	assert.Equal(t, "Niccolò", list.Items[1].FirstName)
}

func TestImport_StrictAbortaEnPrimeraFalla(t *testing.T) {
	f := newFixture(t)
	csv := "first_name,last_name\nAnna,Neri\n,Senza Nome\nLuca,Gialli\n"

	res, err := f.importer.Import(context.Background(), legacyimport.KindCustomers, strings.NewReader(csv), legacyimport.Options{Strict: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Failed)
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestImport_ProductosDecimalesItalianos(t *testing.T) {
	f := newFixture(t)
	csv := "code;name;price;quantity;minimum_quantity;vat_rate;active\n" +
		"TRAP-01;Trapano;1.234,50;3;1;22;sì\n" +
		"VIT-M6;Vite M6;0,12;100;;22;1\n" +
		"VIT-M6;Duplicato;1;1;;22;1\n" +
		"BAD;Prezzo rotto;abc;1;;22;1\n"

	res, err := f.importer.Import(context.Background(), legacyimport.KindProducts, strings.NewReader(csv), legacyimport.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 2, res.Failed)
	assert.ErrorIs(t, res.Errors[0], domain.ErrDuplicate)
	var verr *domain.ValidationError
	require.ErrorAs(t, res.Errors[1], &verr)
	assert.Equal(t, domain.ViolationInvalid, verr.Fields["price"])

	p, err := f.products.GetByCode(context.Background(), "TRAP-01")
	require.NoError(t, err)
	assert.Equal(t, "1234.5", p.Price.String())
	assert.Equal(t, 3, p.Quantity)
	assert.True(t, p.Active)
}

func TestImport_ProductosImporteAmbiguoNoSeCorrompe(t *testing.T) {
	f := newFixture(t)
	csv := "code;name;price;vat_rate\n" +
		"A-1;Mixto;1,234.50;22\n" +
		"A-2;Miles sin coma;1.234;22\n" +
		"A-3;Punto decimal;1234.5;22\n"

	res, err := f.importer.Import(context.Background(), legacyimport.KindProducts, strings.NewReader(csv), legacyimport.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Failed)
	for _, e := range res.Errors {
		var verr *domain.ValidationError
		require.ErrorAs(t, e, &verr)
		assert.Equal(t, domain.ViolationInvalid, verr.Fields["price"])
	}

	_, err = f.products.GetByCode(context.Background(), "A-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	p, err := f.products.GetByCode(context.Background(), "A-3")
	require.NoError(t, err)
	assert.Equal(t, "1234.5", p.Price.String())
}

// ── Proveedores ──────────────────────────────────────────────────────────────

func TestImport_ProveedoresWindows1252(t *testing.T) {
	f := newFixture(t)
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte("company_name,vat_number,notes\nFerramenta Srl,IT01234567890,Consegna entro 5 giorni € extra\n"))
	require.NoError(t, err)

	res, err := f.importer.Import(context.Background(), legacyimport.KindSuppliers, bytes.NewReader(b), legacyimport.Options{Encoding: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Zero(t, res.Failed)
}

// ── Errores de configuración ─────────────────────────────────────────────────

func TestImport_TipoYCodificacionDesconocidos(t *testing.T) {
	f := newFixture(t)
	_, err := f.importer.Import(context.Background(), "orders", strings.NewReader("a\n"), legacyimport.Options{})
	assert.Error(t, err)

	_, err = f.importer.Import(context.Background(), legacyimport.KindCustomers, strings.NewReader("a\n"), legacyimport.Options{Encoding: "ebcdic"})
	assert.Error(t, err)
}
