package repository

import (
	"context"

	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia de facturas y sus líneas sobre el
// backend tabular. Las implementaciones reciben context para poder acotar
// cada llamada remota con timeout.
type InvoiceRepository interface {
	// Create agrega la fila de la factura y luego una fila por línea, en ese
	// orden. No hay rollback: un fallo a mitad retorna *domain.PartialWriteError
	// y puede dejar la factura con líneas incompletas.
	Create(ctx context.Context, inv *entity.Invoice, lines []entity.LineItem) error

	// Find busca por número exacto; si no hay match y mobile no está vacío,
	// por el primer match exacto de móvil. Retorna domain.ErrNotFound si
	// ninguna clave coincide o ambas llegan vacías.
	Find(ctx context.Context, number, mobile string) (*entity.Invoice, error)

	// LineItems retorna las líneas de la factura (escaneo completo + filtro).
	LineItems(ctx context.Context, number string) ([]entity.LineItem, error)

	// Numbers retorna todos los números de factura existentes, cabecera
	// excluida. Alimenta la generación del siguiente número.
	Numbers(ctx context.Context) ([]string, error)

	// Update sobreescribe los campos mutables de la fila de la factura celda
	// por celda y reescribe la tabla de líneas completa (conservando las de
	// otras facturas). Multi-paso y no atómico; cada paso fallido retorna
	// *domain.PartialWriteError. Retorna domain.ErrNotFound si el número no
	// existe.
	Update(ctx context.Context, inv *entity.Invoice, lines []entity.LineItem) error
}
