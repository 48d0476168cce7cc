package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura.
//
// Invariante: Total es siempre la suma de Quantity×Amount de sus líneas al
// momento de escribir, y Balance es siempre Total−Paid. Ninguno de los dos se
// edita de forma independiente; se recalculan en cada create/update.
type Invoice struct {
	Number   string // formato YY-NNNNNN, único; la secuencia reinicia cada año
	Date     time.Time
	Customer string
	Mobile   string
	City     string
	Total    decimal.Decimal
	Paid     decimal.Decimal
	Balance  decimal.Decimal
}

// LineItem es una línea de factura. Pertenece a exactamente una factura,
// referenciada por número (columna tipo foreign key en la hoja de líneas).
type LineItem struct {
	InvoiceNumber string
	Item          string
	Quantity      int64           // no negativo
	Amount        decimal.Decimal // precio unitario, no negativo
}

// LineTotal devuelve Quantity × Amount.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Amount.Mul(decimal.NewFromInt(l.Quantity))
}
