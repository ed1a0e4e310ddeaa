package notes

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/marginbooks/margin/pkg/binder"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/marginbooks/margin/pkg/models"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tiny valid PNG header so content-type sniffing has something to work with.
var pngBytes = []byte("\x89PNG\r\n\x1a\nnot a real image body")

func newNotesTestContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func uploadImage(t *testing.T, h *handler, slug string, page int, filename string, data []byte) (int, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/notes/"+slug+"/"+strconv.Itoa(page)+"/images", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	c, rr := newNotesTestContext(t, req)
	c.SetPath("/notes/:slug/:page/images")
	c.SetParamNames("slug", "page")
	c.SetParamValues(slug, strconv.Itoa(page))

	require.NoError(t, h.uploadImage(c))

	resp := SaveNoteImageResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.ID, rr
}

func TestHandlerGetNote_AbsentReturnsNull(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{noteService: NewService(db)}

	req := httptest.NewRequest(http.MethodGet, "/notes/1_algebra/4", nil)
	c, rr := newNotesTestContext(t, req)
	c.SetPath("/notes/:slug/:page")
	c.SetParamNames("slug", "page")
	c.SetParamValues("1_algebra", "4")

	require.NoError(t, h.get(c))

	// Absence is a 200 with a JSON null body, never a 404.
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(rr.Body.Bytes())))
}

func TestHandlerGetNote_Present(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{noteService: NewService(db)}
	ctx := context.Background()

	require.NoError(t, h.noteService.SetNote(ctx, "1_algebra", 4, "<p>hi</p>", models.NoteFormatHTML))

	req := httptest.NewRequest(http.MethodGet, "/notes/1_algebra/4", nil)
	c, rr := newNotesTestContext(t, req)
	c.SetPath("/notes/:slug/:page")
	c.SetParamNames("slug", "page")
	c.SetParamValues("1_algebra", "4")

	require.NoError(t, h.get(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	note := models.Note{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))
	assert.Equal(t, "<p>hi</p>", note.Content)
	assert.Equal(t, 4, note.Page)
}

func TestHandlerUploadImage_StableID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{noteService: NewService(db)}

	first, rr := uploadImage(t, h, "1_algebra", 3, "paste-1.png", pngBytes)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotZero(t, first)

	second, _ := uploadImage(t, h, "1_algebra", 3, "paste-1.png", append(pngBytes, "v2"...))
	assert.Equal(t, first, second)
}

func TestHandlerImage_SniffsContentType(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{noteService: NewService(db)}

	id, _ := uploadImage(t, h, "1_algebra", 3, "paste-1.png", pngBytes)

	req := httptest.NewRequest(http.MethodGet, "/note-images/"+strconv.Itoa(id), nil)
	c, rr := newNotesTestContext(t, req)
	c.SetPath("/note-images/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(id))

	require.NoError(t, h.image(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get(echo.HeaderContentType))
	assert.Equal(t, pngBytes, rr.Body.Bytes())
}

func TestHandlerUploadImage_RequiresFile(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{noteService: NewService(db)}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("filename", "orphan.png"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/notes/1_algebra/3/images", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	c, _ := newNotesTestContext(t, req)
	c.SetPath("/notes/:slug/:page/images")
	c.SetParamNames("slug", "page")
	c.SetParamValues("1_algebra", "3")

	err := h.uploadImage(c)
	require.Error(t, err)

	var e *errcodes.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "validation_error", e.Code)
}
