package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appbilling "github.com/laxmi-upvc/billing-api/internal/application/billing"
	infrapdf "github.com/laxmi-upvc/billing-api/internal/infrastructure/pdf"
	"github.com/laxmi-upvc/billing-api/internal/infrastructure/sheets"
	httpRouter "github.com/laxmi-upvc/billing-api/internal/interfaces/http"
	"github.com/laxmi-upvc/billing-api/pkg/config"
	"github.com/laxmi-upvc/billing-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := sheets.NewGoogleSheetsStore(ctx, cfg.Sheets, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al backend de hojas")
	}

	invoiceRepo := sheets.NewInvoiceRepository(store, cfg.Sheets.InvoicesSheet, cfg.Sheets.ItemsSheet)
	productRepo := sheets.NewProductRepository(store, cfg.Sheets.ProductsSheet)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.PDF.FontPath, log)

	productsUC := appbilling.NewProductsUseCase(productRepo)
	saveUC := appbilling.NewSaveInvoiceUseCase(invoiceRepo, pdfGenerator, log)
	fetchUC := appbilling.NewFetchInvoiceUseCase(invoiceRepo)
	updateUC := appbilling.NewUpdateInvoiceUseCase(invoiceRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la respuesta de /save_invoice incluye el PDF
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LAXMI uPVC Billing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Products:      productsUC,
		SaveInvoice:   saveUC,
		FetchInvoice:  fetchUC,
		UpdateInvoice: updateUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
