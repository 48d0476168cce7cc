// Package dto define los contratos de entrada/salida de la API. Los montos
// viajan como strings con dos decimales fijos ("526.00") para que la
// serialización no dependa de la representación interna del decimal.
package dto

// ErrorResponse cuerpo de error estándar de la API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ProductResponse producto del catálogo para GET /get_items.
type ProductResponse struct {
	Description string `json:"description"`
	Price       string `json:"price"`
}

// SaveInvoiceRequest campos del formulario de POST /save_invoice.
// Items, Quantities y Amounts son listas paralelas que pueden llegar con
// largos distintos; la normalización vive en el dominio.
type SaveInvoiceRequest struct {
	Customer   string
	Mobile     string
	City       string
	Items      []string
	Quantities []string
	Amounts    []string
	AmountPaid string
}

// UpdateInvoiceRequest campos del formulario de POST /update_invoice.
type UpdateInvoiceRequest struct {
	InvoiceNo  string
	Customer   string
	Mobile     string
	City       string
	Items      []string
	Quantities []string
	Amounts    []string
	AmountPaid string
}

// InvoiceResponse factura con sus líneas para GET /fetch_invoice.
type InvoiceResponse struct {
	InvoiceNo string              `json:"invoice_no"`
	Date      string              `json:"date"`
	Customer  string              `json:"customer"`
	Mobile    string              `json:"mobile"`
	City      string              `json:"city"`
	Total     string              `json:"total_amount"`
	Paid      string              `json:"amount_paid"`
	Balance   string              `json:"balance"`
	Items     []InvoiceItemDetail `json:"items"`
}

// InvoiceItemDetail línea de factura en la respuesta.
type InvoiceItemDetail struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
	Amount   string `json:"amount"`
}
