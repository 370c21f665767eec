// Package sqlite implementa los puertos de repositorio sobre un fichero SQLite local
// (o una base en memoria) con gorm y el driver mattn/go-sqlite3.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// MemoryPath abre una base en memoria que vive mientras el Store esté abierto.
const MemoryPath = ":memory:"

var _ repository.TxRunner = (*Store)(nil)

// Store conexión única a la base SQLite.
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path. No aplica migraciones: ver Migrate.
// Las claves foráneas se activan por conexión y el pool se limita a una conexión,
// así una base en memoria es la misma para todas las consultas.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(gormsqlite.Open(dsn(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %q: %w: %w", path, domain.ErrStorageUnavailable, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, mapError("ping sqlite", err)
	}
	return &Store{db: db}, nil
}

func dsn(path string) string {
	if path == "" || path == MemoryPath {
		return "file::memory:?_foreign_keys=on"
	}
	path = strings.TrimPrefix(path, "file:")
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

// Migrate aplica las migraciones embebidas pendientes.
func (s *Store) Migrate() error {
	mg, err := s.Migrator()
	if err != nil {
		return err
	}
	return mg.Up()
}

// Ping comprueba que la base responde (health check).
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return mapError("ping sqlite", err)
	}
	return mapError("ping sqlite", sqlDB.PingContext(ctx))
}

// Close cierra la conexión. Una base en memoria se pierde.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Repositories adaptadores fuera de transacción.
func (s *Store) Repositories() repository.Repositories {
	return newRepositories(s.db)
}

// Run ejecuta fn en una transacción; un error de fn hace Rollback y se devuelve tal cual.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(newRepositories(tx))
		return fnErr
	})
	if err != nil && fnErr == nil {
		return mapError("transaction", err)
	}
	return err
}

func newRepositories(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Customers:      &CustomerRepo{db: db},
		Products:       &ProductRepo{db: db},
		Suppliers:      &SupplierRepo{db: db},
		Orders:         &OrderRepo{db: db},
		Invoices:       &InvoiceRepo{db: db},
		SupplierOrders: &SupplierOrderRepo{db: db},
		PriceLists:     &PriceListRepo{db: db},
		MinimumStock:   &MinimumStockRepo{db: db},
		Movements:      &MovementRepo{db: db},
		Notifications:  &NotificationRepo{db: db},
		Analytics:      &AnalyticsRepo{db: db},
	}
}
