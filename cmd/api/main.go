package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
	"github.com/jhoicas/Cotizador-api/internal/application/stockentry"
	domainpricing "github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/internal/domain/stockcsv"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("strict_numeric", cfg.Pricing.StrictNumeric).
		Str("discount_base", cfg.Pricing.DiscountBase).
		Msg("iniciando aplicación")

	// Catálogo opcional: sin DB el servicio cotiza e importa sin enriquecimiento.
	var items repository.ItemRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(context.Background(), cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		items = postgres.NewItemRepository(pool)
		log.Info().Msg("catálogo de artículos habilitado")
	}

	m := metrics.New(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)

	quoteUC := pricing.NewQuoteUseCase(
		domainpricing.NewEngine(cfg.Pricing.DiscountBase),
		cfg.Pricing.StrictNumeric,
		items, m, log,
	)
	parser := stockcsv.NewParser(stockcsv.Options{
		DefaultUOM: cfg.Import.DefaultUOM,
		MaxRows:    cfg.Import.MaxRows,
		StrictRate: cfg.Import.StrictRate,
	})
	importUC := stockentry.NewImportUseCase(parser, xlsx.ReadRecords, items, m, log, cfg.Import.MaxUploadBytes())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Import.MaxUploadBytes()) + 1024*1024, // margen para el envoltorio multipart
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		QuoteUC:        quoteUC,
		ImportUC:       importUC,
		Log:            log,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		CatalogEnabled: items != nil,
		MaxUploadBytes: cfg.Import.MaxUploadBytes(),
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
