package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConstraintViolation = errors.New("violación de restricción de integridad")
	ErrStorageUnavailable  = errors.New("almacenamiento no disponible")
)

// Códigos de violación usados en ValidationError.Fields.
const (
	ViolationRequired    = "required"
	ViolationNegative    = "must_not_be_negative"
	ViolationPositive    = "must_be_positive"
	ViolationOutOfRange  = "out_of_range"
	ViolationNotFound    = "not_found"
	ViolationInactive    = "inactive"
	ViolationInvalid     = "invalid"
	ViolationBeforeStart = "before_start"
)

// ValidationError agrupa los campos que no superaron la validación (campo -> código).
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un ValidationError vacío listo para acumular violaciones.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra una violación; la primera violación por campo prevalece.
func (e *ValidationError) Add(field, code string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = code
	}
}

// Required marca el campo si el valor está vacío (tras quitar espacios).
func (e *ValidationError) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, ViolationRequired)
	}
}

// NonNegative marca el campo si v < 0.
func (e *ValidationError) NonNegative(field string, v int) {
	if v < 0 {
		e.Add(field, ViolationNegative)
	}
}

// Positive marca el campo si v <= 0.
func (e *ValidationError) Positive(field string, v int) {
	if v <= 0 {
		e.Add(field, ViolationPositive)
	}
}

// Empty indica si no hay violaciones.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil devuelve nil cuando no hay violaciones; así se puede retornar directamente.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidInput.Error(), strings.Join(parts, ", "))
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Kind clasifica un error en la taxonomía del dominio (para logs, métricas y respuestas HTTP).
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInsufficientStock):
		return "conflict"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "internal"
	}
}
