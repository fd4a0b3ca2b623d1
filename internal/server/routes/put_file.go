package routes

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"notegraph/internal/server/middleware"
	"notegraph/internal/util"
	"notegraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PutFileHandler writes a vault file, backing up any previous content. The
// cached graph is invalidated so the next read re-scans the corpus.
func PutFileHandler(c echo.Context) error {
	type putFileParams struct {
		Path    string `json:"path" validate:"required"`
		Content string `json:"content"`
	}

	params := new(putFileParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if !strings.HasSuffix(params.Path, ".md") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Only markdown files can be edited"})
	}

	app := c.(*middleware.AppContext).App

	target, err := util.ResolveUnderRoot(app.Root, params.Path)
	if err != nil {
		if errors.Is(err, util.ErrOutsideRoot) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid path"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	backupPath, err := backupFile(app.Root, target)
	if err != nil {
		logger.Error("[Files] Backup failed", "file", params.Path, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to back up file"})
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to write file"})
	}
	if err := os.WriteFile(target, []byte(params.Content), 0o644); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to write file"})
	}

	app.Cache.Invalidate()
	logger.Info("[Files] File written", "file", params.Path, "backup", backupPath)

	return c.JSON(http.StatusOK, map[string]string{"message": "File saved"})
}
