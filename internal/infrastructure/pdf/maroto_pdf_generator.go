// Package pdf genera el PDF de las facturas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + P.IVA     │  N° Factura + Fecha          │
//	│  EMISOR: Dirección                                           │
//	│  CLIENTE: Nombre + contacto                                  │
//	│  TABLA: Código | Descripción | Cant | P.Unit | IVA | Total   │
//	│  TOTALES: Imponible / IVA / TOTAL                            │
//	│  FOOTER: QR con la referencia de la factura                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/gestionale-api/internal/application/billing"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Company datos del emisor impresos en cabecera.
type Company struct {
	Name      string
	VATNumber string
	Address   string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company Company
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. locale es una etiqueta BCP 47 (ej. "it-IT");
// si no se reconoce se usa italiano.
func NewMarotoPDFGenerator(company Company, locale string) *MarotoPDFGenerator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Italian
	}
	return &MarotoPDFGenerator{company: company, printer: message.NewPrinter(tag)}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Fattura "+invoice.Number, true).
		WithAuthor(nonEmpty(g.company.Name, "gestionale"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.issuerRow())
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableItemRows(invoice.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(invoice))
	m.AddRows(line.NewRow(3))
	m.AddRows(g.footerRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(invoice *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.company.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("P.IVA: "+nonEmpty(g.company.VATNumber, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FATTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N. "+invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) issuerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(nonEmpty(g.company.Address, "-"), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.FullName(), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   %s   |   %s",
				nonEmpty(customer.Address, "-"),
				nonEmpty(customer.Email, "-"),
				nonEmpty(customer.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Codice", 2, align.Left),
		h("Descrizione", 4, align.Left),
		h("Q.tà", 1, align.Center),
		h("Prezzo", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Totale", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) tableItemRows(items []entity.InvoiceItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			cell(it.ProductCode, 2, align.Left),
			cell(it.ProductName, 4, align.Left),
			cell(g.printer.Sprint(it.Quantity), 1, align.Center),
			cell(g.money(it.UnitPrice), 2, align.Right),
			cell(it.VATRate.String()+"%", 1, align.Center),
			cell(g.money(it.Total), 2, align.Right),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Imponibile:", 0),
			label("IVA:", 6),
			text.New("TOTALE:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value(g.money(invoice.TaxableAmount), 0),
			value(g.money(invoice.VAT), 6),
			text.New(g.money(invoice.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12}),
		),
	)
}

func (g *MarotoPDFGenerator) footerRow(invoice *entity.Invoice) core.Row {
	ref := fmt.Sprintf("%s|%s|%s", invoice.Number, invoice.Date.Format("2006-01-02"), invoice.Total.StringFixed(2))
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(text.New("Stato: "+invoice.Status, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea un importe con dos decimales según el locale del generador (it-IT: "1.234,50 €").
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2))) + " €"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
