package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestionale-api/internal/domain"
)

// paramID lee un identificador positivo de la ruta; si no es válido devuelve un ValidationError.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		v := domain.NewValidationError()
		v.Add(name, domain.ViolationInvalid)
		return 0, v
	}
	return id, nil
}

// bindBody decodifica el JSON del cuerpo.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	return nil
}

// bindQuery decodifica los parámetros de query.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	return nil
}
