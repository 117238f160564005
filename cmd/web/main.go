package main

import (
	"context"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"docview/internal/config"
	"docview/internal/http/handler"
	"docview/internal/http/middleware"
	tracing "docview/internal/otel"
	"docview/internal/service"
	"docview/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(ctx)

	// The storage directory is created at startup if absent; it is the sole
	// persistence layer.
	store, err := storage.NewLocal(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	rnd, err := handler.NewRenderer(cfg.Storage.TemplateDir)
	if err != nil {
		log.Fatal("failed to parse templates", zap.Error(err))
	}

	docSvc := service.NewDocumentService(store, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handler.ErrorHandler(),
		BodyLimit:    cfg.Server.MaxUploadMB * 1024 * 1024,
	})

	// Global middleware: request IDs, JSON request logs, metrics, traces.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}
	app.Use(promMW.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Static assets plus read-only browsing of the storage directory, so
	// extracted images and raw files are fetchable by the preview pages.
	app.Static("/static", cfg.Storage.StaticDir)
	app.Static("/uploads", store.Root())

	handler.RegisterRoutes(app, docSvc, store, rnd)

	addr := ":" + cfg.Server.Port
	log.Info("starting server", zap.String("addr", addr), zap.String("upload_dir", store.Root()))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
