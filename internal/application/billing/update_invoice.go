package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/laxmi-upvc/billing-api/internal/application/dto"
	"github.com/laxmi-upvc/billing-api/internal/domain"
	domainbilling "github.com/laxmi-upvc/billing-api/internal/domain/billing"
	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
	"github.com/laxmi-upvc/billing-api/internal/domain/repository"
	"github.com/laxmi-upvc/billing-api/pkg/logger"
)

// UpdateInvoiceUseCase reemplaza los campos mutables de una factura y
// reescribe todas sus líneas.
type UpdateInvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	log         *logger.Logger
}

// NewUpdateInvoiceUseCase construye el caso de uso.
func NewUpdateInvoiceUseCase(invoiceRepo repository.InvoiceRepository, log *logger.Logger) *UpdateInvoiceUseCase {
	return &UpdateInvoiceUseCase{invoiceRepo: invoiceRepo, log: log}
}

// Update recalcula totales desde las líneas enviadas y aplica el reemplazo.
//
// Ruta de actualización: las listas paralelas se recortan a la más corta y
// amount_paid es obligatorio — si no parsea, la petición completa falla sin
// aplicar nada (domain.ErrInvalidInput). Asimetrías heredadas del
// comportamiento original; ver DESIGN.md.
func (uc *UpdateInvoiceUseCase) Update(ctx context.Context, in dto.UpdateInvoiceRequest) error {
	number := strings.TrimSpace(in.InvoiceNo)
	if number == "" {
		return fmt.Errorf("%w: invoice_no es obligatorio", domain.ErrInvalidInput)
	}

	paid, err := domainbilling.ParsePaidStrict(in.AmountPaid)
	if err != nil {
		return err
	}

	lines := domainbilling.LinesZipped(in.Items, in.Quantities, in.Amounts)
	total := domainbilling.Total(lines)

	// La fecha original no se toca: el update sobreescribe solo las columnas
	// C..H de la fila.
	inv := &entity.Invoice{
		Number:   number,
		Customer: in.Customer,
		Mobile:   in.Mobile,
		City:     in.City,
		Total:    total,
		Paid:     paid,
		Balance:  total.Sub(paid),
	}

	if err := uc.invoiceRepo.Update(ctx, inv, domainbilling.ToLineItems(number, lines)); err != nil {
		var pw *domain.PartialWriteError
		if errors.As(err, &pw) {
			uc.log.Error().
				Str("invoice_no", number).
				Str("op", pw.Op).
				Str("sheet", pw.Sheet).
				Err(pw.Err).
				Msg("escritura parcial en el backend")
		}
		return err
	}

	uc.log.Info().
		Str("invoice_no", number).
		Str("total", total.StringFixed(2)).
		Msg("factura actualizada")
	return nil
}
