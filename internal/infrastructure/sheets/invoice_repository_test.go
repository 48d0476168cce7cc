package sheets_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laxmi-upvc/billing-api/internal/domain"
	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
	"github.com/laxmi-upvc/billing-api/internal/infrastructure/sheets"
)

const (
	wsInvoices = "Invoices"
	wsItems    = "Invoice_Items"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria (reemplaza al backend real en los tests del adaptador)
// ──────────────────────────────────────────────────────────────────────────────

var errBackend = errors.New("backend caído")

type memStore struct {
	tabs map[string][][]string

	appendCalls  int
	failAppendAt int // falla el N-ésimo append (0 = nunca)
}

var _ sheets.RowStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{tabs: map[string][][]string{
		wsInvoices: {{"Invoice_No", "Date", "Customer_Name", "Mobile", "City", "Total_Amount", "Amount_paid", "Balance_Amount"}},
		wsItems:    {{"Invoice_No", "Item", "Quantity", "Amount"}},
	}}
}

func (m *memStore) ReadRows(_ context.Context, sheet string) ([][]string, error) {
	out := make([][]string, len(m.tabs[sheet]))
	copy(out, m.tabs[sheet])
	return out, nil
}

func (m *memStore) AppendRow(ctx context.Context, sheet string, row []string) error {
	return m.AppendRows(ctx, sheet, [][]string{row})
}

func (m *memStore) AppendRows(_ context.Context, sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	m.appendCalls++
	if m.failAppendAt > 0 && m.appendCalls >= m.failAppendAt {
		return errBackend
	}
	m.tabs[sheet] = append(m.tabs[sheet], rows...)
	return nil
}

func (m *memStore) UpdateCell(_ context.Context, sheet string, row, col int, value string) error {
	m.tabs[sheet][row-1][col-1] = value
	return nil
}

func (m *memStore) Clear(_ context.Context, sheet string) error {
	m.tabs[sheet] = nil
	return nil
}

// snapshot copia profunda del estado, para comparar antes/después.
func (m *memStore) snapshot() map[string][][]string {
	out := make(map[string][][]string, len(m.tabs))
	for sheet, rows := range m.tabs {
		cp := make([][]string, len(rows))
		for i, row := range rows {
			cp[i] = append([]string(nil), row...)
		}
		out[sheet] = cp
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice(number string) *entity.Invoice {
	return &entity.Invoice{
		Number:   number,
		Date:     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Customer: "Ravi Kumar",
		Mobile:   "9876543210",
		City:     "Bellampalli",
		Total:    dec("526.00"),
		Paid:     dec("200"),
		Balance:  dec("326.00"),
	}
}

func sampleLines(number string) []entity.LineItem {
	return []entity.LineItem{
		{InvoiceNumber: number, Item: "Door Handle", Quantity: 2, Amount: dec("150.50")},
		{InvoiceNumber: number, Item: "Hinge", Quantity: 5, Amount: dec("45")},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create + Find: round trip
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceRepo_RoundTrip(t *testing.T) {
	store := newMemStore()
	repo := sheets.NewInvoiceRepository(store, wsInvoices, wsItems)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleInvoice("25-000001"), sampleLines("25-000001")))

	got, err := repo.Find(ctx, "25-000001", "")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.Customer)
	assert.Equal(t, "526.00", got.Total.StringFixed(2), "el total debe sobrevivir el round trip")
	assert.Equal(t, "326.00", got.Balance.StringFixed(2))

	items, err := repo.LineItems(ctx, "25-000001")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Door Handle", items[0].Item)
	assert.EqualValues(t, 5, items[1].Quantity)
}

func TestInvoiceRepo_Find_PorMovilComoRespaldo(t *testing.T) {
	store := newMemStore()
	repo := sheets.NewInvoiceRepository(store, wsInvoices, wsItems)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleInvoice("25-000001"), nil))

	// Número inexistente pero móvil correcto: se usa el móvil.
	got, err := repo.Find(ctx, "25-999999", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "25-000001", got.Number)

	// Ninguna clave coincide.
	_, err = repo.Find(ctx, "25-999999", "0000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Ambas claves vacías.
	_, err = repo.Find(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceRepo_Numbers_ExcluyeCabecera(t *testing.T) {
	store := newMemStore()
	repo := sheets.NewInvoiceRepository(store, wsInvoices, wsItems)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleInvoice("25-000001"), nil))
	require.NoError(t, repo.Create(ctx, sampleInvoice("25-000002"), nil))

	numbers, err := repo.Numbers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"25-000001", "25-000002"}, numbers)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceRepo_Update_EsIdempotente(t *testing.T) {
	store := newMemStore()
	repo := sheets.NewInvoiceRepository(store, wsInvoices, wsItems)
	ctx := context.Background()

	// Dos facturas; solo se actualiza la primera.
	require.NoError(t, repo.Create(ctx, sampleInvoice("25-000001"), sampleLines("25-000001")))
	require.NoError(t, repo.Create(ctx, sampleInvoice("25-000002"), sampleLines("25-000002")))

	updated := sampleInvoice("25-000001")
	updated.Customer = "Ravi K."
	updated.Total = dec("45.00")
	updated.Balance = dec("45.00")
	updated.Paid = dec("0")
	newLines := []entity.LineItem{
		{InvoiceNumber: "25-000001", Item: "Hinge", Quantity: 1, Amount: dec("45")},
	}

	require.NoError(t, repo.Update(ctx, updated, newLines))
	after1 := store.snapshot()

	require.NoError(t, repo.Update(ctx, updated, newLines))
	assert.Equal(t, after1, store.snapshot(),
		"aplicar dos veces el mismo update debe dejar el mismo estado final")

	got, err := repo.Find(ctx, "25-000001", "")
	require.NoError(t, err)
	assert.Equal(t, "Ravi K.", got.Customer)
	assert.Equal(t, "45.00", got.Total.StringFixed(2))

	// Las líneas de la otra factura sobreviven la reconstrucción.
	others, err := repo.LineItems(ctx, "25-000002")
	require.NoError(t, err)
	assert.Len(t, others, 2)

	mine, err := repo.LineItems(ctx, "25-000001")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Hinge", mine[0].Item)

	// La cabecera quedó una sola vez.
	rows, _ := store.ReadRows(ctx, wsItems)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Invoice_No", rows[0][0])
	for _, row := range rows[1:] {
		assert.NotEqual(t, "Invoice_No", row[0], "no debe haber cabeceras duplicadas")
	}
}

func TestInvoiceRepo_Update_FacturaInexistente(t *testing.T) {
	store := newMemStore()
	repo := sheets.NewInvoiceRepository(store, wsInvoices, wsItems)

	err := repo.Update(context.Background(), sampleInvoice("25-000009"), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de escritura parcial
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceRepo_Create_FalloAMitad_ReportaEscrituraParcial(t *testing.T) {
	store := newMemStore()
	store.failAppendAt = 2 // la fila de factura entra; el primer ítem falla
	repo := sheets.NewInvoiceRepository(store, wsInvoices, wsItems)

	err := repo.Create(context.Background(), sampleInvoice("25-000001"), sampleLines("25-000001"))
	require.Error(t, err)

	var pw *domain.PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, "append_item", pw.Op)
	assert.Equal(t, wsItems, pw.Sheet)

	// La factura quedó sin líneas: el hueco conocido queda visible, no oculto.
	rows, _ := store.ReadRows(context.Background(), wsInvoices)
	assert.Len(t, rows, 2)
	items, _ := store.ReadRows(context.Background(), wsItems)
	assert.Len(t, items, 1)
}
