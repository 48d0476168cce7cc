// Package billing contiene la lógica de negocio pura de facturación:
// asignación de números de factura y construcción de líneas a partir del
// formulario. Sin dependencias de infraestructura, para poder probarla en
// aislamiento.
package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NextNumber calcula el siguiente número de factura con formato YY-NNNNNN a
// partir de los números ya existentes en el backend y la fecha actual.
//
// La secuencia es por año: solo los sufijos de números del año en curso
// restringen el siguiente valor; números de años anteriores o con formato
// inesperado se ignoran sin error. Con lista vacía (o año fresco) retorna
// la secuencia 1.
//
// No hay exclusión mutua: dos clientes que lean la tabla a la vez pueden
// calcular el mismo número. El backend no ofrece escrituras condicionales,
// así que la ventana de colisión se mantiene (ver DESIGN.md).
func NextNumber(existing []string, now time.Time) string {
	prefix := now.Format("06")
	pattern := regexp.MustCompile(`^` + prefix + `-(\d{6})$`)

	next := 1
	for _, raw := range existing {
		m := pattern.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if seq+1 > next {
			next = seq + 1
		}
	}

	return fmt.Sprintf("%s-%06d", prefix, next)
}
