package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "notegraph/internal/server/middleware"
	"notegraph/internal/util"
	"notegraph/pkg/logger"
	"notegraph/pkg/notes"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := util.GetEnvString("NOTES_ROOT", ".")
	if _, err := os.Stat(root); err != nil {
		logger.Fatal("Notes root is not accessible", "root", root, "err", err)
	}

	builder := notes.NewBuilder(notes.NewBuilderParams{
		Root:          root,
		ParallelFiles: util.GetEnvInt("PARALLEL_FILES", 8),
	})

	ttl := time.Duration(util.GetEnvInt("GRAPH_CACHE_TTL_SECONDS", 30)) * time.Second
	cache := notes.NewCache(builder, ttl)

	app := &mid.App{
		Root:   root,
		Cache:  cache,
		APIKey: util.GetEnv("API_KEY"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("8M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port, "root", root)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
