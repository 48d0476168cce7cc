package sheets

import (
	"context"
	"fmt"

	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
	"github.com/laxmi-upvc/billing-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lectura del catálogo de productos desde su hoja.
// Columnas: Description, Price. Solo lectura: el catálogo se mantiene
// directamente en la hoja, por fuera de este servicio.
type ProductRepo struct {
	store RowStore
	sheet string
}

// NewProductRepository construye el adaptador de catálogo.
func NewProductRepository(store RowStore, sheet string) *ProductRepo {
	return &ProductRepo{store: store, sheet: sheet}
}

// List retorna todos los productos de la hoja, sin filtrado.
func (r *ProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.store.ReadRows(ctx, r.sheet)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range dataRows(rows) {
		products = append(products, entity.Product{
			Description: cell(row, 1),
			Price:       cellDecimal(row, 2),
		})
	}
	return products, nil
}
