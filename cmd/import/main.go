// Comando import: carga clientes, productos o proveedores desde un CSV exportado.
//
//	go run ./cmd/import -kind products -file productos.csv -encoding windows-1252
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/application/usecase"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/gestionale-api/internal/legacyimport"
	"github.com/jhoicas/gestionale-api/pkg/config"
	"github.com/jhoicas/gestionale-api/pkg/logger"
)

func main() {
	kind := flag.String("kind", "", "customers | products | suppliers")
	file := flag.String("file", "", "ruta del CSV")
	encoding := flag.String("encoding", legacyimport.EncodingUTF8, "utf-8 | iso-8859-1 | windows-1252")
	strict := flag.Bool("strict", false, "abortar en la primera fila inválida")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import")

	if *kind == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var repos repository.Repositories
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.DB.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("apertura de SQLite")
		}
		defer store.Close()
		if err := store.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if cfg.DB.Path == sqlite.MemoryPath {
			log.Warn().Msg("SQLite en memoria: la importación no persiste, solo valida el fichero")
		}
		repos = store.Repositories()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = postgres.NewRepositories(pool)
	}

	limits := dto.Limits{Default: cfg.Policy.DefaultListLimit, Max: cfg.Policy.MaxListLimit}
	importer := legacyimport.NewImporter(
		usecase.NewCustomerUseCase(repos.Customers, limits),
		usecase.NewProductUseCase(repos.Products, repos.Suppliers, usecase.ProductPolicy{UniqueCode: cfg.Policy.UniqueProductCode}, limits),
		usecase.NewSupplierUseCase(repos.Suppliers, limits),
		log,
	)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir fichero")
	}
	defer f.Close()

	res, err := importer.Import(ctx, *kind, f, legacyimport.Options{Encoding: *encoding, Strict: *strict})
	if res != nil {
		log.Info().Int("imported", res.Imported).Int("failed", res.Failed).Msg("resumen")
	}
	if err != nil {
		log.Error().Err(err).Msg("importación abortada")
		f.Close()
		os.Exit(1)
	}
}
