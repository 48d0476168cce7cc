package billing

import (
	"context"

	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
)

// InvoicePDFGenerator renderiza el recibo imprimible de una factura ya
// resuelta (número asignado, totales calculados, líneas ordenadas).
type InvoicePDFGenerator interface {
	Generate(ctx context.Context, inv *entity.Invoice, lines []entity.LineItem) ([]byte, error)
}
