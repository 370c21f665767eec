package http

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gestionale-api/pkg/logger"
	"github.com/jhoicas/gestionale-api/pkg/metrics"
)

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name        string
	Log         *logger.Logger
	Metrics     *metrics.Metrics            // nil = sin /metrics ni middleware Prometheus
	SwaggerFile string                      // se sirve en /docs solo si el archivo existe
	HealthCheck func(context.Context) error // nil = siempre ok
}

// NewApp construye la app con el middleware común, /health y /metrics.
// Las rutas de negocio se registran después con Router.
func NewApp(cfg AppConfig) *fiber.App {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 30,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(cfg.Log, cfg.Metrics),
	})
	app.Use(recover.New())
	app.Use(RequestID())
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics.Middleware())
	}
	app.Use(RequestLogger(cfg.Log.Component("http")))

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			// Swagger UI en local: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.Name + " API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": cfg.Name})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}
	return app
}
