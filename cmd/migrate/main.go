// migrate aplica o revierte las migraciones embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|version]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/gestionale-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/gestionale-api/pkg/config"
	"github.com/jhoicas/gestionale-api/pkg/logger"
)

// migrator operaciones comunes a los migradores de postgres y sqlite.
type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "uso: migrate [up|down|version]")
	}
	flag.Parse()
	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	var mg migrator
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.DB.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("apertura de SQLite")
		}
		defer store.Close()
		if mg, err = store.Migrator(); err != nil {
			log.Fatal().Err(err).Msg("inicializar migrador")
		}
	default:
		pm, err := postgres.NewMigrator(cfg.DB.ConnectionString())
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar migrador")
		}
		defer pm.Close()
		mg = pm
	}

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}

	v, dirty, err := mg.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Str("cmd", cmd).Uint("version", v).Bool("dirty", dirty).Msg("migraciones")
}
