package tags

import (
	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/database"
)

// RegisterRoutesWithGroup registers tag routes. Associations live under the
// books group so the slug reads naturally in the path, and the flat
// book-tags listing gets its own group since it spans every book.
func RegisterRoutesWithGroup(g *echo.Group, books *echo.Group, bookTags *echo.Group, db *database.DB) {
	h := &handler{
		tagService: NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)

	books.PUT("/:slug/tags/:tag_id", h.tagBook)
	books.DELETE("/:slug/tags/:tag_id", h.untagBook)

	bookTags.GET("", h.listBookTags)
}
