package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/pkg/logger"
	"github.com/jhoicas/gestionale-api/pkg/metrics"
)

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
//
//	validation           → 400 VALIDATION (con fields)
//	unauthorized         → 401 UNAUTHORIZED
//	not_found            → 404 NOT_FOUND
//	constraint/conflict  → 409
//	storage_unavailable  → 503 STORAGE_UNAVAILABLE
//	resto                → 500 INTERNAL (sin detalle)
func ErrorHandler(log *logger.Logger, m *metrics.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
		}

		kind := domain.Kind(err)
		m.RecordDomainError(kind)

		status, body := fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
		switch kind {
		case "validation":
			status = fiber.StatusBadRequest
			body = dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				body.Fields = verr.Fields
			}
		case "unauthorized":
			status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
		case "not_found":
			status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
		case "constraint_violation":
			code := "CONSTRAINT_VIOLATION"
			if errors.Is(err, domain.ErrDuplicate) {
				code = "DUPLICATE"
			}
			status, body = fiber.StatusConflict, dto.ErrorResponse{Code: code, Message: err.Error()}
		case "conflict":
			code := "CONFLICT"
			if errors.Is(err, domain.ErrInsufficientStock) {
				code = "INSUFFICIENT_STOCK"
			}
			status, body = fiber.StatusConflict, dto.ErrorResponse{Code: code, Message: err.Error()}
		case "storage_unavailable":
			status, body = fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento no disponible"}
		}

		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", requestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error en request")
		}
		return c.Status(status).JSON(body)
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "ERROR"
}
