package sheets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laxmi-upvc/billing-api/internal/infrastructure/sheets"
)

func TestProductRepo_List(t *testing.T) {
	store := newMemStore()
	store.tabs["Items_Sheet"] = [][]string{
		{"Description", "Price"},
		{"Door Handle", "150.50"},
		{"Hinge", "45"},
		{"Sin precio"}, // fila corta: el precio vale 0
	}
	repo := sheets.NewProductRepository(store, "Items_Sheet")

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "Door Handle", products[0].Description)
	assert.Equal(t, "150.50", products[0].Price.StringFixed(2))
	assert.True(t, products[2].Price.IsZero())
}

func TestProductRepo_HojaVacia(t *testing.T) {
	store := newMemStore()
	store.tabs["Items_Sheet"] = nil
	repo := sheets.NewProductRepository(store, "Items_Sheet")

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
