// Package pdf implementa el recibo imprimible de la factura con Maroto v2.
//
// Layout de la página A4 (una sola página):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  BANDA AZUL: LAXMI uPVC              │            INVOICE   │
//	│  Dirección / Móvil de la empresa                             │
//	│  BILL TO: cliente + fecha │ móvil + n° factura │ ciudad      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: S.No | Description | Qty | Rate | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Paid / BALANCE DUE (resaltado)             │
//	│  Thank you for your business!                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	coreentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	appbilling "github.com/laxmi-upvc/billing-api/internal/application/billing"
	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
	"github.com/laxmi-upvc/billing-api/pkg/logger"
)

// Datos fijos del membrete.
const (
	companyName  = "LAXMI uPVC"
	companyCity  = "Bellampalli, Telangana"
	companyPhone = "Mobile: 1234567890"
	closingNote  = "Thank you for your business!"

	// Las descripciones más largas se truncan con puntos suspensivos.
	maxDescriptionRunes = 30

	unicodeFontFamily = "dejavu"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBand  = &props.Color{Red: 52, Green: 152, Blue: 219}
	colorWhite = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
//
// Intenta cargar una fuente TTF con soporte Unicode desde fontPath; si no
// está disponible degrada en silencio a Helvetica (solo Latin básico) y lo
// deja anotado en el log. Nunca es un error fatal.
type MarotoPDFGenerator struct {
	fontPath string
	log      *logger.Logger
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(fontPath string, log *logger.Logger) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{fontPath: fontPath, log: log}
}

// Generate renderiza el recibo y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(_ context.Context, inv *entity.Invoice, lines []entity.LineItem) ([]byte, error) {
	m := maroto.New(g.buildConfig())

	m.AddRows(headerBandRow())
	m.AddRows(companyRows()...)
	m.AddRows(line.NewRow(2))
	m.AddRows(billToRows(inv)...)
	m.AddRows(line.NewRow(4, props.Line{Color: colorBand, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for i, l := range lines {
		m.AddRows(tableDetailRow(i+1, l))
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(totalsRows(inv)...)

	m.AddRows(line.NewRow(8))
	m.AddRows(row.New(5).Add(col.New(12).Add(
		text.New(closingNote, props.Text{
			Style: fontstyle.Italic, Size: 10, Align: align.Center, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// buildConfig arma la configuración de página. La fuente Unicode es un
// intento: cualquier fallo de carga degrada a Helvetica con una nota en el
// log, sin interrumpir la generación.
func (g *MarotoPDFGenerator) buildConfig() *coreentity.Config {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle("Invoice", true).
		WithAuthor(companyName, true)

	family := "helvetica"
	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(unicodeFontFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(unicodeFontFamily, fontstyle.Bold, g.fontPath).
			AddUTF8Font(unicodeFontFamily, fontstyle.Italic, g.fontPath).
			AddUTF8Font(unicodeFontFamily, fontstyle.BoldItalic, g.fontPath).
			Load()
		if err != nil {
			g.log.Warn().Str("font", g.fontPath).Err(err).
				Msg("fuente Unicode no disponible, se usa Helvetica")
		} else {
			builder = builder.WithCustomFonts(fonts)
			family = unicodeFontFamily
		}
	}

	return builder.WithDefaultFont(&props.Font{Family: family, Size: 12}).Build()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerBandRow: banda de color con nombre de la empresa y título del documento.
func headerBandRow() core.Row {
	return row.New(20).WithStyle(&props.Cell{BackgroundColor: colorBand}).Add(
		col.New(7).Add(text.New(companyName, props.Text{
			Style: fontstyle.Bold, Size: 24, Color: colorWhite, Top: 5, Left: 2,
		})),
		col.New(5).Add(text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 24, Color: colorWhite, Top: 5, Right: 2, Align: align.Right,
		})),
	)
}

// companyRows: dirección y teléfono del emisor.
func companyRows() []core.Row {
	return []core.Row{
		row.New(5).Add(col.New(12).Add(text.New(companyCity, props.Text{Size: 10, Top: 1}))),
		row.New(5).Add(col.New(12).Add(text.New(companyPhone, props.Text{Size: 10}))),
	}
}

// billToRows: bloque de datos del cliente y de la factura.
func billToRows(inv *entity.Invoice) []core.Row {
	label := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 12, Align: a, Top: 1})
	}
	return []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("BILL TO:", props.Text{
			Style: fontstyle.Bold, Size: 12, Top: 1,
		}))),
		row.New(7).Add(
			col.New(6).Add(label("Customer Name: "+inv.Customer, align.Left)),
			col.New(6).Add(label("Date: "+inv.Date.Format("2006-01-02"), align.Right)),
		),
		row.New(7).Add(
			col.New(6).Add(label("Mobile: "+inv.Mobile, align.Left)),
			col.New(6).Add(label("Invoice #: "+inv.Number, align.Right)),
		),
		row.New(7).Add(col.New(12).Add(label("City: "+inv.City, align.Left))),
	}
}

// tableHeaderRow: cabecera de la tabla de líneas sobre la banda de color.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).
			WithStyle(&props.Cell{BorderType: border.Full, BorderColor: colorWhite}).
			Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorWhite, Top: 2,
			}))
	}
	return row.New(10).WithStyle(&props.Cell{BackgroundColor: colorBand}).Add(
		h("S.No", 1),
		h("Description", 5),
		h("Qty", 2),
		h("Rate", 2),
		h("Total", 2),
	)
}

// tableDetailRow: una fila bordeada por línea de factura.
func tableDetailRow(seq int, l entity.LineItem) core.Row {
	cell := func(size int, s string, a align.Type, pad float64) core.Col {
		return col.New(size).
			WithStyle(&props.Cell{BorderType: border.Full}).
			Add(text.New(s, props.Text{Size: 12, Align: a, Top: 2, Left: pad, Right: pad}))
	}
	return row.New(10).Add(
		cell(1, strconv.Itoa(seq), align.Center, 0),
		cell(5, truncateDescription(l.Item), align.Left, 1),
		cell(2, strconv.FormatInt(l.Quantity, 10), align.Center, 0),
		cell(2, l.Amount.StringFixed(2), align.Right, 1),
		cell(2, l.LineTotal().StringFixed(2), align.Right, 1),
	)
}

// totalsRows: bloque de totales alineado a la derecha, balance resaltado.
func totalsRows(inv *entity.Invoice) []core.Row {
	amount := func(label string, value string) core.Row {
		return row.New(8).Add(
			col.New(7),
			col.New(5).Add(text.New(fmt.Sprintf("%s: Rs. %s", label, value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1, Right: 1,
			})),
		)
	}
	highlighted := row.New(10).Add(
		col.New(7),
		col.New(5).
			WithStyle(&props.Cell{BackgroundColor: colorBand, BorderType: border.Full}).
			Add(text.New(fmt.Sprintf("Balance Due: Rs. %s", inv.Balance.StringFixed(2)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorWhite, Top: 2, Right: 1,
			})),
	)
	return []core.Row{
		amount("Total Amount", inv.Total.StringFixed(2)),
		amount("Amount Paid", inv.Paid.StringFixed(2)),
		highlighted,
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// truncateDescription recorta descripciones de más de 30 runas agregando
// puntos suspensivos; exactamente 30 se deja intacta.
func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionRunes {
		return s
	}
	return string(runes[:maxDescriptionRunes]) + "..."
}
