package internalhttp

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Register attaches the liveness and health endpoints.
func Register(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to Audio File Service"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
