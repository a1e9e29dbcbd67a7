package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
	"github.com/jhoicas/Cotizador-api/internal/application/stockentry"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QuoteUC        *pricing.QuoteUseCase
	ImportUC       *stockentry.ImportUseCase
	Log            *logger.Logger
	Metrics        *metrics.Metrics    // nil = sin métricas HTTP
	Gatherer       prometheus.Gatherer // nil = sin /metrics
	CatalogEnabled bool
	MaxUploadBytes int64
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))
	if deps.Metrics != nil {
		app.Use(RequestMetrics(deps.Metrics))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Catalog: deps.CatalogEnabled})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Pricing
	pricingGroup := api.Group("/pricing")
	pricingHandler := NewPricingHandler(deps.QuoteUC, log)
	pricingGroup.Post("/line-items", pricingHandler.PriceLine)
	pricingGroup.Post("/documents", pricingHandler.PriceDocument)
	pricingGroup.Post("/quantity-checks", pricingHandler.CheckQuantities)

	// Stock entries
	stockGroup := api.Group("/stock-entries")
	stockHandler := NewStockEntryHandler(deps.ImportUC, log, deps.MaxUploadBytes)
	stockGroup.Post("/import", stockHandler.Import)
}
