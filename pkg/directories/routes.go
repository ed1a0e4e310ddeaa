package directories

import (
	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/database"
)

// RegisterRoutesWithGroup registers directory routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *database.DB) {
	h := &handler{
		directoryService: NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.remove)
}
