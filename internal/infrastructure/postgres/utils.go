package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// Querier abstrae pool y tx: los repositorios funcionan igual dentro y fuera de una transacción.
// Begin sobre una tx abre un savepoint, por lo que withTx es anidable.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// mapError traduce errores de pgx a la taxonomía del dominio conservando el error original.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23503", pgErr.Code == "23514", pgErr.Code == "23502":
			// foreign_key_violation, check_violation, not_null_violation
			return fmt.Errorf("%s: %w: %w", op, domain.ErrConstraintViolation, err)
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "57P01", pgErr.Code == "53300":
			// connection_exception, admin_shutdown, too_many_connections
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOne convierte un UPDATE/DELETE sin filas afectadas en ErrNotFound.
func expectOne(op string, cmd pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// withTx ejecuta fn en una transacción (o savepoint) sobre q y hace Commit o Rollback.
func withTx(ctx context.Context, q Querier, fn func(tx Querier) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return mapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

// whereBuilder arma cláusulas WHERE con placeholders $n numerados en orden.
type whereBuilder struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el siguiente placeholder.
func (w *whereBuilder) add(cond string, vals ...any) {
	for _, v := range vals {
		w.args = append(w.args, v)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// search agrega un ILIKE sobre varias columnas con el mismo patrón.
func (w *whereBuilder) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	w.args = append(w.args, "%"+term+"%")
	ph := fmt.Sprintf("$%d", len(w.args))
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE " + ph
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page devuelve ORDER BY + LIMIT/OFFSET. sortable mapea nombre público -> columna SQL;
// un Sort desconocido se ignora y se usa el orden de inserción.
func (w *whereBuilder) page(f repository.ListFilter, sortable map[string]string, idColumn string) string {
	var b strings.Builder
	b.WriteString(" ORDER BY ")
	if col, ok := sortable[f.Sort]; ok {
		b.WriteString(col)
		if f.Desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
		b.WriteString(", ")
	}
	b.WriteString(idColumn)
	if f.Limit > 0 {
		w.args = append(w.args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(w.args))
	}
	if f.Offset > 0 {
		w.args = append(w.args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(w.args))
	}
	return b.String()
}
