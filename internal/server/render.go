package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askhat-bs/trackd/internal/db"
)

// renderError maps service errors onto the HTTP taxonomy: validation
// problems are 400, ownership and missing records are 404, everything
// else is a storage failure.
func renderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case errors.Is(err, db.ErrNoActiveTimer):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "no active timer found"})
	case errors.Is(err, db.ErrEmailTaken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "user already exists"})
	case errors.Is(err, db.ErrInvalidField):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid field value"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// renderFieldErrors reports per-field validation messages.
func renderFieldErrors(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": "validation failed",
		"errors":  fields,
	})
}
