package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/laxmi-upvc/billing-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Products      *billing.ProductsUseCase
	SaveInvoice   *billing.SaveInvoiceUseCase
	FetchInvoice  *billing.FetchInvoiceUseCase
	UpdateInvoice *billing.UpdateInvoiceUseCase
}

// Router registra las rutas del servicio. La superficie es estable: el
// formulario del front-end y los clientes existentes dependen de estos
// nombres y formatos.
func Router(app *fiber.App, deps RouterDeps) {
	h := NewBillingHandler(deps.Products, deps.SaveInvoice, deps.FetchInvoice, deps.UpdateInvoice)

	app.Get("/", h.Index)
	app.Get("/get_items", h.Products)
	app.Post("/save_invoice", h.Save)
	app.Get("/fetch_invoice", h.Fetch)
	app.Post("/update_invoice", h.Update)
}
