package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Sheets SheetsConfig
	PDF    PDFConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SheetsConfig conexión al backend de hojas de cálculo (Google Sheets).
// CredentialsJSON tiene prioridad sobre CredentialsFile; con ambos vacíos se
// usan las Application Default Credentials del entorno.
type SheetsConfig struct {
	CredentialsJSON string // contenido del service account JSON (env SHEETS_CREDENTIALS_JSON)
	CredentialsFile string // ruta al archivo service account JSON
	SpreadsheetID   string // ID del documento que contiene las tres hojas
	InvoicesSheet   string // hoja de cabeceras de factura
	ItemsSheet      string // hoja de líneas de factura
	ProductsSheet   string // hoja de productos (solo lectura)

	Timeout    time.Duration // timeout por llamada al backend
	MaxRetries int           // reintentos ante errores transitorios (429/5xx)
}

// PDFConfig opciones del renderizador de facturas.
type PDFConfig struct {
	FontPath string // ruta a una fuente TTF con soporte Unicode; si no carga se degrada a Helvetica
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SPREADSHEET_ID, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "billing-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5000),
		},
		Sheets: SheetsConfig{
			CredentialsJSON: getString(v, "SHEETS_CREDENTIALS_JSON", ""),
			CredentialsFile: getString(v, "SHEETS_CREDENTIALS_FILE", ""),
			SpreadsheetID:   getString(v, "SPREADSHEET_ID", ""),
			InvoicesSheet:   getString(v, "SHEETS_INVOICES_WS", "Invoices"),
			ItemsSheet:      getString(v, "SHEETS_ITEMS_WS", "Invoice_Items"),
			ProductsSheet:   getString(v, "SHEETS_PRODUCTS_WS", "Items_Sheet"),
			Timeout:         time.Duration(getInt(v, "SHEETS_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxRetries:      getInt(v, "SHEETS_MAX_RETRIES", 3),
		},
		PDF: PDFConfig{
			FontPath: getString(v, "PDF_FONT_PATH", "static/fonts/DejaVuSans.ttf"),
		},
	}

	if cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("config: SPREADSHEET_ID es obligatorio")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
