package tags

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	tagService *Service
}

func tagIDParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, errcodes.NotFound("Tag")
	}
	return id, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	tagList, err := h.tagService.ListTags(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, tagList))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateTagPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	tag, err := h.tagService.CreateTag(ctx, params.Name, params.Color)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, tag))
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := tagIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.tagService.DeleteTag(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := tagIDParam(c, "id")
	if err != nil {
		return err
	}

	params := UpdateTagPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.tagService.UpdateTagColor(ctx, id, params.Color); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) tagBook(c echo.Context) error {
	ctx := c.Request().Context()
	tagID, err := tagIDParam(c, "tag_id")
	if err != nil {
		return err
	}

	if err := h.tagService.TagBook(ctx, c.Param("slug"), tagID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) untagBook(c echo.Context) error {
	ctx := c.Request().Context()
	tagID, err := tagIDParam(c, "tag_id")
	if err != nil {
		return err
	}

	if err := h.tagService.UntagBook(ctx, c.Param("slug"), tagID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) listBookTags(c echo.Context) error {
	ctx := c.Request().Context()

	mappings, err := h.tagService.ListBookTagsAll(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, mappings))
}
