// Package table contiene el estado de interacción de las tablas del cliente:
// orden por columna, menú contextual y tecla de borrado. No depende de ningún toolkit gráfico.
package table

import (
	"slices"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
)

// Direction estado de orden de una columna.
type Direction int

const (
	Unsorted Direction = iota
	Descending
	Ascending
)

func (d Direction) String() string {
	switch d {
	case Descending:
		return "desc"
	case Ascending:
		return "asc"
	default:
		return ""
	}
}

// SortState orden activo de una tabla. Solo una columna puede estar ordenada a la vez.
type SortState struct {
	column string
	dir    Direction
}

// Click avanza el ciclo de la columna pulsada: descendente → ascendente → sin orden.
// Pulsar otra columna la reinicia en descendente.
func (s *SortState) Click(column string) {
	if column != s.column || s.dir == Unsorted {
		s.column, s.dir = column, Descending
		return
	}
	switch s.dir {
	case Descending:
		s.dir = Ascending
	case Ascending:
		s.column, s.dir = "", Unsorted
	}
}

// Column devuelve la columna ordenada y su dirección ("" y Unsorted si no hay orden).
func (s SortState) Column() (string, Direction) {
	return s.column, s.dir
}

// Apply traslada el orden a una petición de listado de la API.
func (s SortState) Apply(p dto.PageRequest) dto.PageRequest {
	p.Sort, p.Dir = s.column, s.dir.String()
	return p
}

// Sorted devuelve una copia de rows ordenada según el estado; sin orden o con columna
// desconocida conserva el orden original. El orden es estable.
func Sorted[T any](rows []T, s SortState, columns map[string]func(a, b T) int) []T {
	out := slices.Clone(rows)
	cmp, ok := columns[s.column]
	if !ok || s.dir == Unsorted {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if s.dir == Descending {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}
