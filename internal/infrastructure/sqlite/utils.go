package sqlite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// mapError traduce errores de gorm/sqlite3 a la taxonomía del dominio conservando el original.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrConstraintViolation, err)
		}
		switch sqlErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrFull:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOne convierte un UPDATE/DELETE sin filas afectadas en ErrNotFound.
func expectOne(op string, res *gorm.DB) error {
	if res.Error != nil {
		return mapError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// search agrega un LIKE (sin distinguir mayúsculas ASCII) sobre varias columnas.
func search(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	pattern := "%" + term + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		parts[i] = c + " LIKE ?"
		args[i] = pattern
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// page aplica ORDER BY + LIMIT/OFFSET. sortable mapea nombre público -> expresión SQL;
// un Sort desconocido se ignora y se usa el orden de inserción.
func page(q *gorm.DB, f repository.ListFilter, sortable map[string]string, idColumn string) *gorm.DB {
	if col, ok := sortable[f.Sort]; ok {
		if f.Desc {
			q = q.Order(col + " DESC")
		} else {
			q = q.Order(col + " ASC")
		}
	}
	q = q.Order(idColumn)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return q
}

// utc normaliza las fechas antes de escribirlas: se guardan como texto y se comparan como tal.
func utc(t time.Time) time.Time { return t.UTC() }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func day(t time.Time) string { return t.UTC().Format(time.DateOnly) }

func yearPrefix(year int) string { return fmt.Sprintf("%04d", year) }
