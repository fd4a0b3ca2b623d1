package routes

import (
	"errors"
	"net/http"
	"os"

	"notegraph/internal/server/middleware"
	"notegraph/internal/util"
	"notegraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeleteFileHandler removes a vault file after backing it up, then
// invalidates the cached graph.
func DeleteFileHandler(c echo.Context) error {
	type deleteFileParams struct {
		Path string `query:"path" validate:"required"`
	}

	params := new(deleteFileParams)
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

	if _, err := os.Stat(target); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "File not found"})
	}

	backupPath, err := backupFile(app.Root, target)
	if err != nil {
		logger.Error("[Files] Backup failed", "file", params.Path, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to back up file"})
	}

	if err := os.Remove(target); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete file"})
	}

	app.Cache.Invalidate()
	logger.Info("[Files] File deleted", "file", params.Path, "backup", backupPath)

	return c.JSON(http.StatusOK, map[string]string{"message": "File deleted"})
}
