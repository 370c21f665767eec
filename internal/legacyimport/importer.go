package legacyimport

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/usecase"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/pkg/logger"
)

// Tipos de fichero importables.
const (
	KindCustomers = "customers"
	KindProducts  = "products"
	KindSuppliers = "suppliers"
)

// RowError fallo de una fila (Line es la línea del fichero, cabecera = 1).
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// Result resumen de una importación.
type Result struct {
	Imported int
	Failed   int
	Errors   []RowError
}

// Options ajustes de lectura.
type Options struct {
	Encoding string
	Strict   bool // la primera fila fallida aborta la importación
}

// Importer importa ficheros CSV a través de los casos de uso.
type Importer struct {
	customers *usecase.CustomerUseCase
	products  *usecase.ProductUseCase
	suppliers *usecase.SupplierUseCase
	log       *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(customers *usecase.CustomerUseCase, products *usecase.ProductUseCase, suppliers *usecase.SupplierUseCase, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{customers: customers, products: products, suppliers: suppliers, log: log.Component("legacyimport")}
}

// Import lee el CSV de r. La cabecera nombra las columnas (mismos nombres que la API);
// el separador ',' o ';' se detecta en la cabecera. Las filas fallidas se registran y cuentan.
func (im *Importer) Import(ctx context.Context, kind string, r io.Reader, opts Options) (*Result, error) {
	insert, err := im.inserter(kind)
	if err != nil {
		return nil, err
	}
	decoded, err := NewDecoder(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(decoded)
	cr := csv.NewReader(br)
	cr.Comma = detectComma(br)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("legacyimport: leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	res := &Result{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("legacyimport: línea %d: %w", line, err)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		row := record{cols: cols, values: rec}
		if err := insert(ctx, row); err != nil {
			rowErr := RowError{Line: line, Err: err}
			res.Failed++
			res.Errors = append(res.Errors, rowErr)
			im.log.Warn().Str("kind", kind).Int("line", line).Err(err).Msg("fila descartada")
			if opts.Strict || !isRowError(err) {
				return res, rowErr
			}
			continue
		}
		res.Imported++
	}
	im.log.Info().Str("kind", kind).Int("imported", res.Imported).Int("failed", res.Failed).Msg("importación terminada")
	return res, nil
}

// isRowError distingue errores de datos de la fila de fallos de almacenamiento, que abortan siempre.
func isRowError(err error) bool {
	switch domain.Kind(err) {
	case "validation", "not_found", "constraint_violation", "conflict":
		return true
	}
	return false
}

func detectComma(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	first := string(peek)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

type record struct {
	cols   map[string]int
	values []string
}

func (r record) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (im *Importer) inserter(kind string) (func(context.Context, record) error, error) {
	switch kind {
	case KindCustomers:
		return im.insertCustomer, nil
	case KindProducts:
		return im.insertProduct, nil
	case KindSuppliers:
		return im.insertSupplier, nil
	}
	return nil, fmt.Errorf("legacyimport: tipo %q desconocido", kind)
}

func (im *Importer) insertCustomer(ctx context.Context, r record) error {
	_, err := im.customers.Create(ctx, dto.CustomerRequest{
		FirstName: r.get("first_name"),
		LastName:  r.get("last_name"),
		Email:     r.get("email"),
		Phone:     r.get("phone"),
		Address:   r.get("address"),
	})
	return err
}

func (im *Importer) insertSupplier(ctx context.Context, r record) error {
	_, err := im.suppliers.Create(ctx, dto.SupplierRequest{
		CompanyName:    r.get("company_name"),
		VATNumber:      r.get("vat_number"),
		TaxCode:        r.get("tax_code"),
		Address:        r.get("address"),
		Phone:          r.get("phone"),
		Email:          r.get("email"),
		CertifiedEmail: r.get("certified_email"),
		Website:        r.get("website"),
		Notes:          r.get("notes"),
	})
	return err
}

func (im *Importer) insertProduct(ctx context.Context, r record) error {
	v := domain.NewValidationError()
	num := func(field string) int {
		n, err := parseInt(r.get(field))
		if err != nil {
			v.Add(field, domain.ViolationInvalid)
		}
		return n
	}
	money := func(field string) decimal.Decimal {
		x, err := parseDecimal(r.get(field))
		if err != nil {
			v.Add(field, domain.ViolationInvalid)
		}
		return x
	}
	in := dto.CreateProductRequest{
		Code:              r.get("code"),
		Name:              r.get("name"),
		Description:       r.get("description"),
		Price:             money("price"),
		Quantity:          num("quantity"),
		Category:          r.get("category"),
		AlternativeSKU:    r.get("alternative_sku"),
		Weight:            money("weight"),
		UnitOfMeasure:     r.get("unit_of_measure"),
		MinimumQuantity:   num("minimum_quantity"),
		AcquisitionCost:   money("acquisition_cost"),
		WarehousePosition: r.get("warehouse_position"),
		VATRate:           money("vat_rate"),
	}
	if s := r.get("active"); s != "" {
		active, err := parseBool(s)
		if err != nil {
			v.Add("active", domain.ViolationInvalid)
		}
		in.Active = &active
	}
	if err := v.OrNil(); err != nil {
		return err
	}
	_, err := im.products.Create(ctx, in)
	return err
}
