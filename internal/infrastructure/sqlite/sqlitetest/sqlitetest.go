// Package sqlitetest abre bases SQLite en memoria ya migradas para los tests de otros paquetes.
package sqlitetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestionale-api/internal/infrastructure/sqlite"
)

// New devuelve un Store vacío con el esquema aplicado; se cierra al terminar el test.
func New(t testing.TB) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}
