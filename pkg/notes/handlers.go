package notes

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	noteService *Service
}

func pageParam(c echo.Context) (int, error) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return 0, errcodes.NotFound("Note")
	}
	return page, nil
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.GetNote(ctx, c.Param("slug"), page)
	if err != nil {
		return errors.WithStack(err)
	}

	// A page with no note serializes as a JSON null, not a 404.
	return errors.WithStack(c.JSON(http.StatusOK, note))
}

func (h *handler) set(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	params := SetNotePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.noteService.SetNote(ctx, c.Param("slug"), page, params.Content, params.Format); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	if err := h.noteService.DeleteNote(ctx, c.Param("slug"), page); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	noteList, err := h.noteService.ListNotesForBook(ctx, c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, noteList))
}

func (h *handler) export(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.noteService.ExportNotesForBook(ctx, c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc)))
}

func (h *handler) uploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	params := SaveNoteImagePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	var file io.ReadCloser
	filename := params.Filename
	for _, header := range params.FormFiles {
		f, err := header.Open()
		if err != nil {
			return errors.WithStack(err)
		}
		file = f
		if filename == "" {
			filename = header.Filename
		}
		break
	}
	if file == nil {
		return errcodes.ValidationError("An image file is required.")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.WithStack(err)
	}
	if filename == "" {
		filename = uuid.New().String()
	}

	id, err := h.noteService.SaveNoteImage(ctx, c.Param("slug"), page, filename, data)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, SaveNoteImageResponse{ID: id}))
}

func (h *handler) image(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Image")
	}

	img, err := h.noteService.GetNoteImage(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	// The store doesn't record a content type, so sniff it from the bytes.
	return errors.WithStack(c.Blob(http.StatusOK, mimetype.Detect(img.Data).String(), img.Data))
}

func (h *handler) importLegacy(c echo.Context) error {
	ctx := c.Request().Context()

	// The legacy export is a free-form map keyed by "slug:page", so it can't
	// go through the struct binder.
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errors.WithStack(err)
	}
	defer c.Request().Body.Close()

	count, err := h.noteService.ImportLegacyNotes(ctx, body)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, ImportLegacyNotesResponse{Count: count}))
}
