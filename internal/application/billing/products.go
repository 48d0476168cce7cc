package billing

import (
	"context"
	"fmt"

	"github.com/laxmi-upvc/billing-api/internal/application/dto"
	"github.com/laxmi-upvc/billing-api/internal/domain/repository"
)

// ProductsUseCase lista el catálogo de productos (pass-through de lectura).
type ProductsUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductsUseCase construye el caso de uso.
func NewProductsUseCase(productRepo repository.ProductRepository) *ProductsUseCase {
	return &ProductsUseCase{productRepo: productRepo}
}

// List retorna todos los productos con su precio.
func (uc *ProductsUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar catálogo: %w", err)
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{Description: p.Description, Price: p.Price.StringFixed(2)})
	}
	return out, nil
}
