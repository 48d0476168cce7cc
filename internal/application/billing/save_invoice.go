// Package billing contiene los casos de uso de facturación: guardar,
// consultar y actualizar facturas, y listar el catálogo.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/laxmi-upvc/billing-api/internal/application/dto"
	"github.com/laxmi-upvc/billing-api/internal/domain"
	domainbilling "github.com/laxmi-upvc/billing-api/internal/domain/billing"
	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
	"github.com/laxmi-upvc/billing-api/internal/domain/repository"
	"github.com/laxmi-upvc/billing-api/pkg/logger"
)

// SaveInvoiceUseCase crea una factura desde el formulario: normaliza las
// líneas, calcula totales, asigna el siguiente número del año y persiste
// cabecera y líneas antes de renderizar el PDF.
type SaveInvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	pdf         InvoicePDFGenerator
	log         *logger.Logger
}

// NewSaveInvoiceUseCase construye el caso de uso.
func NewSaveInvoiceUseCase(invoiceRepo repository.InvoiceRepository, pdf InvoicePDFGenerator, log *logger.Logger) *SaveInvoiceUseCase {
	return &SaveInvoiceUseCase{invoiceRepo: invoiceRepo, pdf: pdf, log: log}
}

// Save persiste la factura y retorna el PDF del recibo con su nombre de
// archivo ("<número>.pdf").
//
// Ruta de creación: listas paralelas rellenadas con "0" hasta la más larga
// y amount_paid tolerante (ausente o basura vale 0). La asignación de
// número lee la tabla completa y no está serializada frente a otros
// clientes; ver DESIGN.md.
func (uc *SaveInvoiceUseCase) Save(ctx context.Context, in dto.SaveInvoiceRequest) ([]byte, string, error) {
	lines := domainbilling.LinesZeroFilled(in.Items, in.Quantities, in.Amounts)
	total := domainbilling.Total(lines)
	paid := domainbilling.ParsePaidLenient(in.AmountPaid)

	numbers, err := uc.invoiceRepo.Numbers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("guardar factura: %w", err)
	}
	number := domainbilling.NextNumber(numbers, time.Now())

	inv := &entity.Invoice{
		Number:   number,
		Date:     time.Now(),
		Customer: strings.TrimSpace(in.Customer),
		Mobile:   strings.TrimSpace(in.Mobile),
		City:     strings.TrimSpace(in.City),
		Total:    total,
		Paid:     paid,
		Balance:  total.Sub(paid),
	}

	if err := uc.invoiceRepo.Create(ctx, inv, domainbilling.ToLineItems(number, lines)); err != nil {
		uc.logPartialWrite(err, number)
		return nil, "", fmt.Errorf("guardar factura %s: %w", number, err)
	}

	pdfBytes, err := uc.pdf.Generate(ctx, inv, domainbilling.ToLineItems(number, lines))
	if err != nil {
		return nil, "", fmt.Errorf("renderizar factura %s: %w", number, err)
	}

	uc.log.Info().
		Str("invoice_no", number).
		Str("total", total.StringFixed(2)).
		Int("lines", len(lines)).
		Msg("factura creada")

	return pdfBytes, number + ".pdf", nil
}

// logPartialWrite deja rastro explícito de las escrituras que quedaron a
// medias: son el insumo para reconciliar la hoja a mano.
func (uc *SaveInvoiceUseCase) logPartialWrite(err error, number string) {
	var pw *domain.PartialWriteError
	if errors.As(err, &pw) {
		uc.log.Error().
			Str("invoice_no", number).
			Str("op", pw.Op).
			Str("sheet", pw.Sheet).
			Err(pw.Err).
			Msg("escritura parcial en el backend")
	}
}
