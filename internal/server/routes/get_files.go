package routes

import (
	"net/http"
	"sort"

	"notegraph/internal/server/middleware"
	"notegraph/pkg/notes"

	"github.com/labstack/echo/v4"
)

// GetFilesHandler lists the relative paths of every markdown file the next
// build would scan.
func GetFilesHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	files, err := notes.Discover(app.Root)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list files"})
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := notes.RelPath(app.Root, file)
		if err != nil {
			continue
		}
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	return c.JSON(http.StatusOK, map[string][]string{"files": paths})
}
