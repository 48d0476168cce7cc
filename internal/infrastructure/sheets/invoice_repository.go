package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/laxmi-upvc/billing-api/internal/domain"
	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
	"github.com/laxmi-upvc/billing-api/internal/domain/repository"
)

// Columnas de la hoja de facturas (1-based):
// Invoice_No, Date, Customer_Name, Mobile, City, Total_Amount, Amount_paid, Balance_Amount.
const (
	colInvoiceNo = 1
	colDate      = 2
	colCustomer  = 3
	colMobile    = 4
	colCity      = 5
	colTotal     = 6
	colPaid      = 7
	colBalance   = 8
)

const dateLayout = "2006-01-02"

var invoicesHeader = []string{"Invoice_No", "Date", "Customer_Name", "Mobile", "City", "Total_Amount", "Amount_paid", "Balance_Amount"}
var itemsHeader = []string{"Invoice_No", "Item", "Quantity", "Amount"}

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre dos hojas
// paralelas: una fila por factura y N filas por factura para sus líneas.
type InvoiceRepo struct {
	store         RowStore
	invoicesSheet string
	itemsSheet    string
}

// NewInvoiceRepository construye el adaptador de persistencia de facturas.
func NewInvoiceRepository(store RowStore, invoicesSheet, itemsSheet string) *InvoiceRepo {
	return &InvoiceRepo{store: store, invoicesSheet: invoicesSheet, itemsSheet: itemsSheet}
}

// Create agrega la fila de la factura y luego una fila por línea, en ese
// orden. Sin rollback: si un append de línea falla, la factura queda con
// líneas incompletas y se retorna *domain.PartialWriteError identificando
// el paso.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, lines []entity.LineItem) error {
	if err := r.store.AppendRow(ctx, r.invoicesSheet, invoiceRow(inv)); err != nil {
		return &domain.PartialWriteError{Op: "append_invoice", Sheet: r.invoicesSheet, Err: err}
	}
	for _, l := range lines {
		if err := r.store.AppendRow(ctx, r.itemsSheet, itemRow(l)); err != nil {
			return &domain.PartialWriteError{Op: "append_item", Sheet: r.itemsSheet, Err: err}
		}
	}
	return nil
}

// Find escanea la hoja completa: primero match exacto por número; si no hay
// y mobile no está vacío, primer match exacto por móvil.
func (r *InvoiceRepo) Find(ctx context.Context, number, mobile string) (*entity.Invoice, error) {
	if number == "" && mobile == "" {
		return nil, domain.ErrNotFound
	}

	rows, err := r.store.ReadRows(ctx, r.invoicesSheet)
	if err != nil {
		return nil, fmt.Errorf("buscar factura: %w", err)
	}

	if number != "" {
		for _, row := range dataRows(rows) {
			if cell(row, colInvoiceNo) == number {
				return invoiceFromRow(row), nil
			}
		}
	}
	if mobile != "" {
		for _, row := range dataRows(rows) {
			if cell(row, colMobile) == mobile {
				return invoiceFromRow(row), nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// LineItems escanea la hoja de líneas y filtra por número de factura.
func (r *InvoiceRepo) LineItems(ctx context.Context, number string) ([]entity.LineItem, error) {
	rows, err := r.store.ReadRows(ctx, r.itemsSheet)
	if err != nil {
		return nil, fmt.Errorf("leer líneas: %w", err)
	}

	items := make([]entity.LineItem, 0)
	for _, row := range dataRows(rows) {
		if cell(row, 1) != number {
			continue
		}
		items = append(items, lineFromRow(row))
	}
	return items, nil
}

// Numbers retorna la primera columna de la hoja de facturas, sin cabecera.
func (r *InvoiceRepo) Numbers(ctx context.Context) ([]string, error) {
	rows, err := r.store.ReadRows(ctx, r.invoicesSheet)
	if err != nil {
		return nil, fmt.Errorf("leer números de factura: %w", err)
	}

	numbers := make([]string, 0, len(rows))
	for _, row := range dataRows(rows) {
		numbers = append(numbers, cell(row, colInvoiceNo))
	}
	return numbers, nil
}

// Update localiza la fila por escaneo lineal y sobreescribe los seis campos
// mutables celda por celda; después reconstruye la hoja de líneas completa:
// conserva cabecera y filas de otras facturas, limpia la hoja y re-agrega
// cabecera, filas conservadas y filas nuevas.
//
// La secuencia no es atómica: un fallo a mitad deja la hoja de líneas
// incompleta. Cada paso fallido retorna *domain.PartialWriteError para que
// el caller lo registre y la reconciliación sea posible.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice, lines []entity.LineItem) error {
	rows, err := r.store.ReadRows(ctx, r.invoicesSheet)
	if err != nil {
		return fmt.Errorf("localizar factura: %w", err)
	}

	sheetRow := 0
	for idx, row := range rows {
		if cell(row, colInvoiceNo) == inv.Number {
			sheetRow = idx + 1 // filas 1-based en la hoja
			break
		}
	}
	if sheetRow == 0 {
		return domain.ErrNotFound
	}

	// 1) Cabecera de la factura, celda por celda (columnas C..H).
	updates := []struct {
		col   int
		value string
	}{
		{colCustomer, inv.Customer},
		{colMobile, inv.Mobile},
		{colCity, inv.City},
		{colTotal, inv.Total.StringFixed(2)},
		{colPaid, inv.Paid.StringFixed(2)},
		{colBalance, inv.Balance.StringFixed(2)},
	}
	for _, u := range updates {
		if err := r.store.UpdateCell(ctx, r.invoicesSheet, sheetRow, u.col, u.value); err != nil {
			return &domain.PartialWriteError{Op: "update_cell", Sheet: r.invoicesSheet, Err: err}
		}
	}

	// 2) Reconstrucción de la hoja de líneas.
	itemRows, err := r.store.ReadRows(ctx, r.itemsSheet)
	if err != nil {
		return &domain.PartialWriteError{Op: "read_items", Sheet: r.itemsSheet, Err: err}
	}

	header := itemsHeader
	if len(itemRows) > 0 {
		header = itemRows[0]
	}
	keep := make([][]string, 0, len(itemRows))
	for _, row := range dataRows(itemRows) {
		if cell(row, 1) != inv.Number {
			keep = append(keep, row)
		}
	}
	fresh := make([][]string, 0, len(lines))
	for _, l := range lines {
		fresh = append(fresh, itemRow(l))
	}

	if err := r.store.Clear(ctx, r.itemsSheet); err != nil {
		return &domain.PartialWriteError{Op: "clear_items", Sheet: r.itemsSheet, Err: err}
	}
	if err := r.store.AppendRow(ctx, r.itemsSheet, header); err != nil {
		return &domain.PartialWriteError{Op: "append_header", Sheet: r.itemsSheet, Err: err}
	}
	if err := r.store.AppendRows(ctx, r.itemsSheet, keep); err != nil {
		return &domain.PartialWriteError{Op: "append_kept", Sheet: r.itemsSheet, Err: err}
	}
	if err := r.store.AppendRows(ctx, r.itemsSheet, fresh); err != nil {
		return &domain.PartialWriteError{Op: "append_new", Sheet: r.itemsSheet, Err: err}
	}
	return nil
}

// ── mapeo fila ↔ entidad ──────────────────────────────────────────────────────

func invoiceRow(inv *entity.Invoice) []string {
	return []string{
		inv.Number,
		inv.Date.Format(dateLayout),
		inv.Customer,
		inv.Mobile,
		inv.City,
		inv.Total.StringFixed(2),
		inv.Paid.StringFixed(2),
		inv.Balance.StringFixed(2),
	}
}

func itemRow(l entity.LineItem) []string {
	return []string{
		l.InvoiceNumber,
		l.Item,
		strconv.FormatInt(l.Quantity, 10),
		l.Amount.StringFixed(2),
	}
}

func invoiceFromRow(row []string) *entity.Invoice {
	date, _ := time.Parse(dateLayout, cell(row, colDate))
	return &entity.Invoice{
		Number:   cell(row, colInvoiceNo),
		Date:     date,
		Customer: cell(row, colCustomer),
		Mobile:   cell(row, colMobile),
		City:     cell(row, colCity),
		Total:    cellDecimal(row, colTotal),
		Paid:     cellDecimal(row, colPaid),
		Balance:  cellDecimal(row, colBalance),
	}
}

func lineFromRow(row []string) entity.LineItem {
	qty, _ := strconv.ParseFloat(cell(row, 3), 64)
	return entity.LineItem{
		InvoiceNumber: cell(row, 1),
		Item:          cell(row, 2),
		Quantity:      int64(qty),
		Amount:        cellDecimal(row, 4),
	}
}

// dataRows descarta la fila de cabecera, si existe.
func dataRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// cell acceso 1-based tolerante a filas cortas.
func cell(row []string, col int) string {
	if col-1 < len(row) {
		return row[col-1]
	}
	return ""
}

func cellDecimal(row []string, col int) decimal.Decimal {
	d, err := decimal.NewFromString(cell(row, col))
	if err != nil {
		return decimal.Zero
	}
	return d
}
