package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)

// PartialWriteError indica que una secuencia de escrituras al backend quedó
// a medias: la hoja puede contener una factura sin líneas, líneas huérfanas
// o una tabla reconstruida parcialmente. El backend no ofrece transacciones,
// así que el error solo identifica el paso que falló para poder reconciliar
// a mano.
type PartialWriteError struct {
	Op    string // paso que falló: "append_invoice", "append_item", "clear_items", ...
	Sheet string // hoja afectada
	Err   error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("escritura parcial en %q (paso %s): %v", e.Sheet, e.Op, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
