package routes

import (
	"net/http"

	"notegraph/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetGraphHandler serves the assembled corpus graph, rebuilding it through
// the cache on miss. The graph changes whenever a source file does, so
// clients must not cache the response themselves.
func GetGraphHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	graph, err := app.Cache.Get(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to build graph"})
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, graph)
}
