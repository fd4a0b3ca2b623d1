package routes

import (
	"bytes"
	"errors"
	"net/http"
	"os"

	"notegraph/internal/server/middleware"
	"notegraph/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// GetFileHandler returns the content of one vault file, either as raw
// markdown or rendered to HTML.
func GetFileHandler(c echo.Context) error {
	type getFileParams struct {
		Path   string `query:"path" validate:"required"`
		Format string `query:"format" validate:"omitempty,oneof=raw html"`
	}

	params := new(getFileParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	target, err := util.ResolveUnderRoot(app.Root, params.Path)
	if err != nil {
		if errors.Is(err, util.ErrOutsideRoot) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid path"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	content, err := os.ReadFile(target)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "File not found"})
	}

	if params.Format == "html" {
		var buf bytes.Buffer
		if err := markdown.Convert(content, &buf); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to render file"})
		}
		return c.HTML(http.StatusOK, buf.String())
	}

	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", content)
}
