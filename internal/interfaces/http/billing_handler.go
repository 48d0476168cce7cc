package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/laxmi-upvc/billing-api/internal/application/billing"
	"github.com/laxmi-upvc/billing-api/internal/application/dto"
	"github.com/laxmi-upvc/billing-api/internal/domain"
)

const msgNotFound = "Invoice not found or incorrect details."

// BillingHandler maneja las peticiones HTTP de facturación.
type BillingHandler struct {
	products *billing.ProductsUseCase
	save     *billing.SaveInvoiceUseCase
	fetch    *billing.FetchInvoiceUseCase
	update   *billing.UpdateInvoiceUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(
	products *billing.ProductsUseCase,
	save *billing.SaveInvoiceUseCase,
	fetch *billing.FetchInvoiceUseCase,
	update *billing.UpdateInvoiceUseCase,
) *BillingHandler {
	return &BillingHandler{products: products, save: save, fetch: fetch, update: update}
}

// Index sirve la página del formulario.
// GET /
func (h *BillingHandler) Index(c *fiber.Ctx) error {
	return c.SendFile("./web/index.html")
}

// Products lista el catálogo con precios.
// GET /get_items
func (h *BillingHandler) Products(c *fiber.Ctx) error {
	items, err := h.products.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Save crea una factura desde el formulario y responde con el PDF del recibo.
// POST /save_invoice (form-encoded)
func (h *BillingHandler) Save(c *fiber.Ctx) error {
	in := dto.SaveInvoiceRequest{
		Customer:   c.FormValue("customer"),
		Mobile:     c.FormValue("mobile"),
		City:       c.FormValue("city"),
		Items:      formList(c, "item[]"),
		Quantities: formList(c, "quantity[]"),
		Amounts:    formList(c, "amount[]"),
		AmountPaid: c.FormValue("amount_paid"),
	}

	pdfBytes, filename, err := h.save.Save(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Fetch consulta una factura por número o móvil.
// GET /fetch_invoice?invoice_no=&mobile=
func (h *BillingHandler) Fetch(c *fiber.Ctx) error {
	inv, err := h.fetch.Fetch(c.Context(), c.Query("invoice_no"), c.Query("mobile"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Update reemplaza los campos mutables de una factura y todas sus líneas.
// POST /update_invoice (form-encoded)
func (h *BillingHandler) Update(c *fiber.Ctx) error {
	in := dto.UpdateInvoiceRequest{
		InvoiceNo:  c.FormValue("invoice_no"),
		Customer:   c.FormValue("customer"),
		Mobile:     c.FormValue("mobile"),
		City:       c.FormValue("city"),
		Items:      formList(c, "item[]"),
		Quantities: formList(c, "quantity[]"),
		Amounts:    formList(c, "amount[]"),
		AmountPaid: c.FormValue("amount_paid"),
	}

	if err := h.update.Update(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendString("Invoice updated successfully")
}

// respondError traduce errores de dominio a códigos HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var pw *domain.PartialWriteError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: msgNotFound})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &pw):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}

// formList lee un campo repetido del formulario (item[], quantity[],
// amount[]), venga como multipart o como application/x-www-form-urlencoded.
func formList(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if values, ok := form.Value[key]; ok {
			return values
		}
	}

	raw := c.Request().PostArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return values
}
