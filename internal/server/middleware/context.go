package middleware

import (
	"notegraph/pkg/notes"

	"github.com/labstack/echo/v4"
)

// App bundles the shared state handlers need: the corpus root, the graph
// cache and the optional static API key.
type App struct {
	Root   string
	Cache  *notes.Cache
	APIKey string
}

// AppContext wraps the echo context with application state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware attaches the shared App to every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
