package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/gestionale-api/internal/application/analytics"
	"github.com/jhoicas/gestionale-api/internal/application/auth"
	"github.com/jhoicas/gestionale-api/internal/application/billing"
	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/inventory"
	"github.com/jhoicas/gestionale-api/internal/application/purchasing"
	"github.com/jhoicas/gestionale-api/internal/application/usecase"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/gestionale-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/gestionale-api/internal/interfaces/http"
	"github.com/jhoicas/gestionale-api/pkg/config"
	"github.com/jhoicas/gestionale-api/pkg/logger"
	"github.com/jhoicas/gestionale-api/pkg/metrics"
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// ── Almacenamiento ─────────────────────────────────────────────────────────
	var (
		tx          repository.TxRunner
		repos       repository.Repositories
		healthCheck func(context.Context) error
	)
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.DB.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("apertura de SQLite")
		}
		defer store.Close()
		if cfg.DB.MigrateOnStart {
			if err := store.Migrate(); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Str("path", cfg.DB.Path).Msg("migraciones aplicadas")
		}
		if cfg.DB.Path == sqlite.MemoryPath {
			log.Warn().Msg("SQLite en memoria: los datos se pierden al reiniciar")
		}
		tx, repos = store, store.Repositories()
		healthCheck = store.Ping
	default:
		if cfg.DB.MigrateOnStart {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		var pool *pgxpool.Pool
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		tx, repos = postgres.NewTxRunner(pool), postgres.NewRepositories(pool)
		healthCheck = pool.Ping
	}

	// ── Casos de uso ───────────────────────────────────────────────────────────
	limits := dto.Limits{Default: cfg.Policy.DefaultListLimit, Max: cfg.Policy.MaxListLimit}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	movementUC := inventory.NewMovementUseCase(tx, repos, limits, m)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Company{
		Name:      cfg.PDF.CompanyName,
		VATNumber: cfg.PDF.CompanyVAT,
		Address:   cfg.PDF.CompanyAddress,
	}, cfg.PDF.Locale)

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: autenticación deshabilitada")
	}
	authUC := auth.NewAuthUseCase(
		auth.Credentials{Username: cfg.Auth.AdminUser, PasswordHash: cfg.Auth.AdminPasswordHash},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Log:         log,
		Metrics:     m,
		SwaggerFile: "./docs/swagger.json",
		HealthCheck: healthCheck,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:      usecase.NewCustomerUseCase(repos.Customers, limits),
		ProductUC:       usecase.NewProductUseCase(repos.Products, repos.Suppliers, usecase.ProductPolicy{UniqueCode: cfg.Policy.UniqueProductCode}, limits),
		SupplierUC:      usecase.NewSupplierUseCase(repos.Suppliers, limits),
		OrderUC:         billing.NewOrderUseCase(tx, repos, limits),
		InvoiceUC:       billing.NewInvoiceUseCase(tx, repos, limits),
		InvoicePDF:      billing.NewPDFUseCase(repos.Invoices, repos.Customers, pdfGenerator),
		SupplierOrderUC: purchasing.NewSupplierOrderUseCase(tx, repos, movementUC, limits),
		PriceListUC:     purchasing.NewPriceListUseCase(repos, limits),
		MovementUC:      movementUC,
		MinimumStockUC:  inventory.NewMinimumStockUseCase(repos, limits),
		NotificationUC:  inventory.NewNotificationUseCase(repos, limits),
		Replenishment:   inventory.NewReplenishmentUseCase(repos),
		DashboardUC:     appanalytics.NewDashboardUseCase(repos.Analytics),
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
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
