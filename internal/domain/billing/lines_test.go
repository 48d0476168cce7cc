package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laxmi-upvc/billing-api/internal/domain"
	"github.com/laxmi-upvc/billing-api/internal/domain/billing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Parseo de campos del formulario
// ──────────────────────────────────────────────────────────────────────────────

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2", 2},
		{"2.9", 2},  // trunca, no redondea
		{"", 0},
		{"abc", 0},
		{"-3", 0},   // las cantidades son no negativas
	}
	for _, c := range cases {
		assert.Equal(t, c.want, billing.ParseQuantity(c.in), "entrada %q", c.in)
	}
}

func TestParseAmount_DescartaSimbolosDeMoneda(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"₹150.50", "150.5"},
		{"Rs. 1,200.00", "1200"},
		{"Rs. 45", "45"},          // el punto del prefijo no contamina el valor
		{"1,23,456.78", "123456.78"}, // agrupación india de miles
		{"45", "45"},
		{"", "0"},
		{"n/a", "0"},
		{"Rs.", "0"},
	}
	for _, c := range cases {
		want := decimal.RequireFromString(c.want)
		assert.True(t, want.Equal(billing.ParseAmount(c.in)), "entrada %q", c.in)
	}
}

func TestParsePaid_RutasAsimetricas(t *testing.T) {
	// Creación: ausente o basura vale 0.
	assert.True(t, billing.ParsePaidLenient("").IsZero())
	assert.True(t, billing.ParsePaidLenient("xx").IsZero())

	// Actualización: el mismo valor falla la operación completa.
	_, err := billing.ParsePaidStrict("xx")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	paid, err := billing.ParsePaidStrict("200")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(paid))
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción de líneas: asimetría creación vs actualización
// ──────────────────────────────────────────────────────────────────────────────

// Creación: listas de largos distintos se completan con "0" hasta la más larga.
func TestLinesZeroFilled_RellenaHastaLaListaMasLarga(t *testing.T) {
	lines := billing.LinesZeroFilled(
		[]string{"Door Handle", "Hinge"},
		[]string{"2"},
		[]string{"150.50", "45", "99"},
	)
	require.Len(t, lines, 3)

	assert.Equal(t, "Door Handle", lines[0].Item)
	assert.EqualValues(t, 2, lines[0].Quantity)

	// La cantidad faltante de "Hinge" se rellena con "0".
	assert.Equal(t, "Hinge", lines[1].Item)
	assert.EqualValues(t, 0, lines[1].Quantity)
	assert.True(t, decimal.RequireFromString("45").Equal(lines[1].Amount))

	// La tercera línea existe solo por el monto sobrante; item y qty valen "0".
	assert.Equal(t, "0", lines[2].Item)
	assert.EqualValues(t, 0, lines[2].Quantity)
}

// Actualización: listas de largos distintos se recortan a la más corta.
func TestLinesZipped_RecortaALaListaMasCorta(t *testing.T) {
	lines := billing.LinesZipped(
		[]string{"Door Handle", "Hinge"},
		[]string{"2"},
		[]string{"150.50", "45", "99"},
	)
	require.Len(t, lines, 1)
	assert.Equal(t, "Door Handle", lines[0].Item)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: 2×150.50 + 5×45 = 526.00, balance 326.00.
func TestTotal_EscenarioDoorHandleHinge(t *testing.T) {
	lines := billing.LinesZeroFilled(
		[]string{"Door Handle", "Hinge"},
		[]string{"2", "5"},
		[]string{"₹150.50", "45"},
	)
	total := billing.Total(lines)
	assert.Equal(t, "526.00", total.StringFixed(2))

	paid := billing.ParsePaidLenient("200")
	assert.Equal(t, "326.00", total.Sub(paid).StringFixed(2))
}

// El total se calcula sobre los valores parseados, no sobre las cadenas crudas.
func TestTotal_UsaValoresSaneados(t *testing.T) {
	lines := billing.LinesZeroFilled(
		[]string{"A"},
		[]string{"3.7"},        // trunca a 3
		[]string{"Rs. 10.00"},  // sanea a 10
	)
	assert.Equal(t, "30.00", billing.Total(lines).StringFixed(2))
}

func TestToLineItems_LigaElNumeroDeFactura(t *testing.T) {
	lines := billing.LinesZipped([]string{"A"}, []string{"1"}, []string{"5"})
	items := billing.ToLineItems("25-000007", lines)
	require.Len(t, items, 1)
	assert.Equal(t, "25-000007", items[0].InvoiceNumber)
}
