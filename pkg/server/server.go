package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/marginbooks/margin/pkg/binder"
	"github.com/marginbooks/margin/pkg/config"
	"github.com/marginbooks/margin/pkg/database"
	"github.com/marginbooks/margin/pkg/directories"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/marginbooks/margin/pkg/filesystem"
	"github.com/marginbooks/margin/pkg/notes"
	"github.com/marginbooks/margin/pkg/tags"
	"github.com/marginbooks/margin/pkg/textbooks"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
)

// New builds the HTTP server for the desktop webview. There is no auth
// layer: the server binds to loopback and trusts its single local caller.
func New(cfg *config.Config, db *database.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	directories.RegisterRoutesWithGroup(e.Group("/directories"), db)
	textbooks.RegisterRoutesWithGroup(e.Group("/textbooks"), db)
	notes.RegisterRoutesWithGroup(e.Group("/notes"), e.Group("/note-images"), db)
	tags.RegisterRoutesWithGroup(e.Group("/tags"), e.Group("/books"), e.Group("/book-tags"), db)
	filesystem.RegisterRoutes(e)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
