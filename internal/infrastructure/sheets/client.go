// Package sheets implementa la persistencia del servicio sobre una hoja de
// cálculo remota (Google Sheets). El backend solo ofrece operaciones a nivel
// de fila/celda y sin transacciones, así que los repositorios de este paquete
// trabajan por escaneo completo y escrituras multi-paso.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/laxmi-upvc/billing-api/pkg/config"
	"github.com/laxmi-upvc/billing-api/pkg/logger"
)

// RowStore puerto mínimo hacia el backend tabular. Fila y columna son
// 1-based, como en la hoja. Se inyecta en los repositorios para poder
// probarlos con un store en memoria.
type RowStore interface {
	ReadRows(ctx context.Context, sheet string) ([][]string, error)
	AppendRow(ctx context.Context, sheet string, row []string) error
	AppendRows(ctx context.Context, sheet string, rows [][]string) error
	UpdateCell(ctx context.Context, sheet string, row, col int, value string) error
	Clear(ctx context.Context, sheet string) error
}

var _ RowStore = (*GoogleSheetsStore)(nil)

// GoogleSheetsStore implementación de RowStore sobre la API Sheets v4.
// Cada llamada remota se acota con el timeout configurado y se reintenta
// con backoff ante errores transitorios (429 y 5xx).
type GoogleSheetsStore struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	timeout       time.Duration
	maxRetries    int
	log           *logger.Logger
}

// NewGoogleSheetsStore construye el store autenticando con el service
// account configurado (JSON inline, archivo, o credenciales del entorno).
func NewGoogleSheetsStore(ctx context.Context, cfg config.SheetsConfig, log *logger.Logger) (*GoogleSheetsStore, error) {
	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: crear servicio: %w", err)
	}

	return &GoogleSheetsStore{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		timeout:       cfg.Timeout,
		maxRetries:    cfg.MaxRetries,
		log:           log,
	}, nil
}

// ReadRows lee la hoja completa como matriz de strings.
func (s *GoogleSheetsStore) ReadRows(ctx context.Context, sheet string) ([][]string, error) {
	var resp *sheetsapi.ValueRange
	err := s.withRetry(ctx, "read_rows", sheet, func(ctx context.Context) error {
		var err error
		resp, err = s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheet).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("sheets: leer %q: %w", sheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow agrega una fila al final de la hoja.
func (s *GoogleSheetsStore) AppendRow(ctx context.Context, sheet string, row []string) error {
	return s.AppendRows(ctx, sheet, [][]string{row})
}

// AppendRows agrega varias filas en una sola llamada.
func (s *GoogleSheetsStore) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	vr := &sheetsapi.ValueRange{Values: toValues(rows)}
	err := s.withRetry(ctx, "append_rows", sheet, func(ctx context.Context) error {
		_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, sheet, vr).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("sheets: append en %q: %w", sheet, err)
	}
	return nil
}

// UpdateCell sobreescribe una celda individual (fila y columna 1-based).
func (s *GoogleSheetsStore) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", sheet, columnLetter(col), row)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	err := s.withRetry(ctx, "update_cell", sheet, func(ctx context.Context) error {
		_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("sheets: actualizar %s: %w", rng, err)
	}
	return nil
}

// Clear vacía la hoja completa (cabecera incluida).
func (s *GoogleSheetsStore) Clear(ctx context.Context, sheet string) error {
	err := s.withRetry(ctx, "clear", sheet, func(ctx context.Context) error {
		_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, sheet, &sheetsapi.ClearValuesRequest{}).
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("sheets: limpiar %q: %w", sheet, err)
	}
	return nil
}

// withRetry acota cada intento con el timeout configurado y reintenta con
// backoff exponencial ante errores transitorios del backend.
func (s *GoogleSheetsStore) withRetry(ctx context.Context, op, sheet string, fn func(ctx context.Context) error) error {
	backoff := 500 * time.Millisecond
	var err error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.log.Warn().
				Str("op", op).Str("sheet", sheet).
				Int("attempt", attempt).Err(err).
				Msg("reintentando llamada al backend")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err = fn(callCtx)
		cancel()

		if err == nil || !isTransient(err) {
			return err
		}
	}
	return err
}

// isTransient reporta si el error amerita reintento: rate limit (429),
// errores de servidor (5xx) o timeout del intento.
func isTransient(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, c := range row {
			cells = append(cells, c)
		}
		values = append(values, cells)
	}
	return values
}

// columnLetter convierte un índice 1-based a la letra de columna A1 (A..Z,
// AA..). Las hojas de este servicio usan como mucho la columna H.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
