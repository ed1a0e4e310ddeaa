package textbooks

import (
	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/database"
)

// RegisterRoutesWithGroup registers textbook routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *database.DB) {
	h := &handler{
		textbookService: NewService(db),
	}

	g.GET("", h.list)
	g.GET("/file", h.file)
	g.POST("/rename", h.rename)
	g.DELETE("", h.remove)
}
