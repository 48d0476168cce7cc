package entity

import "github.com/shopspring/decimal"

// Product es un ítem vendible del catálogo. Datos de referencia de solo
// lectura: su ciclo de vida se mantiene por fuera de este servicio,
// directamente en la hoja de productos.
type Product struct {
	Description string
	Price       decimal.Decimal
}
