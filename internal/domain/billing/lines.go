package billing

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/laxmi-upvc/billing-api/internal/domain"
	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
)

// Line es una línea de factura ya normalizada, todavía sin número asignado.
type Line struct {
	Item     string
	Quantity int64
	Amount   decimal.Decimal
}

var (
	amountSanitizer = regexp.MustCompile(`[^\d.]`)
	amountToken     = regexp.MustCompile(`\d+(\.\d+)?`)
)

// ParseQuantity interpreta una cantidad del formulario: parseo numérico
// permisivo truncado a entero. Vacío, no numérico o negativo resulta en 0.
func ParseQuantity(s string) int64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

// ParseAmount interpreta un monto del formulario: descarta todo carácter que
// no sea dígito o punto decimal (símbolos de moneda, separadores de miles) y
// toma el primer token numérico bien formado del resto. El token evita que
// prefijos con punto ("Rs. ") dejen un punto huérfano que arruine el parseo.
// Vacío o sin token resulta en 0.
func ParseAmount(s string) decimal.Decimal {
	clean := amountToken.FindString(amountSanitizer.ReplaceAllString(s, ""))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParsePaidLenient interpreta amount_paid en la ruta de creación: ausente o
// no parseable vale 0.
func ParsePaidLenient(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParsePaidStrict interpreta amount_paid en la ruta de actualización: un
// valor ausente o no parseable falla la operación completa (nada se aplica).
func ParsePaidStrict(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount_paid %q no es numérico", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// LinesZeroFilled construye líneas para la ruta de creación: las tres listas
// se recorren hasta la MÁS LARGA y las entradas faltantes se rellenan con
// "0" (equivalente a zip_longest con fillvalue="0" del sistema original).
func LinesZeroFilled(items, qtys, amounts []string) []Line {
	n := len(items)
	if len(qtys) > n {
		n = len(qtys)
	}
	if len(amounts) > n {
		n = len(amounts)
	}

	at := func(xs []string, i int) string {
		if i < len(xs) {
			return xs[i]
		}
		return "0"
	}

	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, Line{
			Item:     at(items, i),
			Quantity: ParseQuantity(at(qtys, i)),
			Amount:   ParseAmount(at(amounts, i)),
		})
	}
	return lines
}

// LinesZipped construye líneas para la ruta de actualización: las tres
// listas se recorren solo hasta la MÁS CORTA y el resto se descarta.
//
// La asimetría con LinesZeroFilled viene del comportamiento original y se
// conserva a propósito en vez de unificarla (ver DESIGN.md).
func LinesZipped(items, qtys, amounts []string) []Line {
	n := len(items)
	if len(qtys) < n {
		n = len(qtys)
	}
	if len(amounts) < n {
		n = len(amounts)
	}

	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, Line{
			Item:     items[i],
			Quantity: ParseQuantity(qtys[i]),
			Amount:   ParseAmount(amounts[i]),
		})
	}
	return lines
}

// Total suma Quantity×Amount sobre los valores ya parseados (nunca sobre las
// cadenas crudas del formulario).
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

// ToLineItems convierte las líneas normalizadas en entidades ligadas al
// número de factura dado.
func ToLineItems(number string, lines []Line) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, entity.LineItem{
			InvoiceNumber: number,
			Item:          l.Item,
			Quantity:      l.Quantity,
			Amount:        l.Amount,
		})
	}
	return items
}
