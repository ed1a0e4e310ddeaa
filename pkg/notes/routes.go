package notes

import (
	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/database"
)

// RegisterRoutesWithGroup registers note routes on a pre-configured group,
// plus the raw image route on its own group so image URLs stay short enough
// to embed in note content.
func RegisterRoutesWithGroup(g *echo.Group, images *echo.Group, db *database.DB) {
	h := &handler{
		noteService: NewService(db),
	}

	g.GET("/:slug", h.list)
	g.GET("/:slug/export", h.export)
	g.GET("/:slug/:page", h.get)
	g.PUT("/:slug/:page", h.set)
	g.DELETE("/:slug/:page", h.remove)
	g.POST("/:slug/:page/images", h.uploadImage)
	g.POST("/import-legacy", h.importLegacy)

	images.GET("/:id", h.image)
}
