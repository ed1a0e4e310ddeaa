package directories

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	directoryService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	dirs, err := h.directoryService.ListDirectories(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, dirs))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateDirectoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	dir, err := h.directoryService.AddDirectory(ctx, params.Path)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, dir))
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Directory")
	}

	if err := h.directoryService.RemoveDirectory(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
