package server

import (
	"notegraph/internal/server/middleware"
	"notegraph/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)

	// Vault file routes
	apiRoutes.GET("/files", routes.GetFilesHandler)
	apiRoutes.GET("/file", routes.GetFileHandler)
	apiRoutes.PUT("/file", routes.PutFileHandler)
	apiRoutes.DELETE("/file", routes.DeleteFileHandler)
}
