package dto

import (
	"strings"

	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// PageRequest paginación, orden y búsqueda para listados.
type PageRequest struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Sort   string `query:"sort"`
	Dir    string `query:"dir"` // asc | desc
	Search string `query:"q"`
}

// Limits límites de paginación (Policy.DefaultListLimit / MaxListLimit).
type Limits struct {
	Default int
	Max     int
}

// ListFilter normaliza la página: Limit <= 0 usa el defecto y se recorta al máximo; Offset negativo = 0.
func (p PageRequest) ListFilter(l Limits) repository.ListFilter {
	limit := p.Limit
	if limit <= 0 {
		limit = l.Default
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return repository.ListFilter{
		Limit:  limit,
		Offset: offset,
		Sort:   strings.TrimSpace(p.Sort),
		Desc:   strings.EqualFold(p.Dir, "desc"),
		Search: p.Search,
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Sort   string `json:"sort,omitempty"`
	Dir    string `json:"dir,omitempty"`
}

// NewPageResponse refleja el filtro efectivamente aplicado.
func NewPageResponse(f repository.ListFilter) PageResponse {
	p := PageResponse{Limit: f.Limit, Offset: f.Offset, Sort: f.Sort}
	if f.Sort != "" {
		p.Dir = "asc"
		if f.Desc {
			p.Dir = "desc"
		}
	}
	return p
}

// ListResponse lista paginada genérica.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// ErrorResponse cuerpo de error HTTP. Fields solo en errores de validación (campo -> código).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
