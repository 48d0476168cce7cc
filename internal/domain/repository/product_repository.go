package repository

import (
	"context"

	"github.com/laxmi-upvc/billing-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo de productos.
type ProductRepository interface {
	// List retorna todos los productos de la hoja, sin filtrado.
	List(ctx context.Context) ([]entity.Product, error)
}
