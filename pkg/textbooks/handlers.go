package textbooks

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	textbookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	textbooks, err := h.textbookService.ListTextbooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, textbooks))
}

func (h *handler) rename(c echo.Context) error {
	params := RenameTextbookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.textbookService.RenameTextbook(params.Path, params.NewName); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) remove(c echo.Context) error {
	params := DeleteTextbookQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.textbookService.DeleteTextbook(params.Path); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) file(c echo.Context) error {
	params := FileQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	data, err := h.textbookService.ReadFileBytes(params.Path)
	if err != nil {
		return errors.WithStack(err)
	}

	// PDF bytes pass through opaquely; the front end renders them.
	return errors.WithStack(c.Blob(http.StatusOK, "application/pdf", data))
}
