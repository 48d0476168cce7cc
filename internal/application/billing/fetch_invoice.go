package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/laxmi-upvc/billing-api/internal/application/dto"
	"github.com/laxmi-upvc/billing-api/internal/domain/repository"
)

// FetchInvoiceUseCase consulta una factura por número o por móvil.
type FetchInvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewFetchInvoiceUseCase construye el caso de uso.
func NewFetchInvoiceUseCase(invoiceRepo repository.InvoiceRepository) *FetchInvoiceUseCase {
	return &FetchInvoiceUseCase{invoiceRepo: invoiceRepo}
}

// Fetch busca por número exacto y, como respaldo, por móvil exacto (primer
// match). Retorna domain.ErrNotFound si ninguna clave coincide.
func (uc *FetchInvoiceUseCase) Fetch(ctx context.Context, number, mobile string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.Find(ctx, strings.TrimSpace(number), strings.TrimSpace(mobile))
	if err != nil {
		return nil, err
	}

	items, err := uc.invoiceRepo.LineItems(ctx, inv.Number)
	if err != nil {
		return nil, fmt.Errorf("consultar líneas de %s: %w", inv.Number, err)
	}

	resp := &dto.InvoiceResponse{
		InvoiceNo: inv.Number,
		Date:      inv.Date.Format("2006-01-02"),
		Customer:  inv.Customer,
		Mobile:    inv.Mobile,
		City:      inv.City,
		Total:     inv.Total.StringFixed(2),
		Paid:      inv.Paid.StringFixed(2),
		Balance:   inv.Balance.StringFixed(2),
		Items:     make([]dto.InvoiceItemDetail, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemDetail{
			Item:     it.Item,
			Quantity: it.Quantity,
			Amount:   it.Amount.StringFixed(2),
		})
	}
	return resp, nil
}
