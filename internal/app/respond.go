package app

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

// serverError logs the fault and answers with a generic body; internal detail
// is never returned to the caller.
func (h handler) serverError(c echo.Context, err error) error {
	h.logger.LogAttrs(c.Request().Context(), slog.LevelError,
		"request failed",
		slog.String("route", c.Path()),
		slog.Any("error", err),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
}
