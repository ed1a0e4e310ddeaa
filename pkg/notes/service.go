package notes

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marginbooks/margin/pkg/database"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/marginbooks/margin/pkg/models"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

type Service struct {
	db *database.DB
}

func NewService(db *database.DB) *Service {
	return &Service{db}
}

// GetNote returns the note for a book page, or nil when none exists. Absence
// is a regular result here, not an error; the editor opens empty pages all
// the time.
func (svc *Service) GetNote(ctx context.Context, slug string, page int) (*models.Note, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	note := &models.Note{}
	err := svc.db.
		NewSelect().
		Model(note).
		Where("n.slug = ?", slug).
		Where("n.page = ?", page).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return note, nil
}

// SetNote writes the note for a book page. Empty content deletes the row
// instead, so a cleared editor never leaves blank notes behind.
func (svc *Service) SetNote(ctx context.Context, slug string, page int, content, format string) error {
	svc.db.Acquire()
	defer svc.db.Release()

	if content == "" {
		_, err := svc.db.
			NewDelete().
			Model((*models.Note)(nil)).
			Where("n.slug = ?", slug).
			Where("n.page = ?", page).
			Exec(ctx)
		return errors.WithStack(err)
	}

	note := &models.Note{
		Slug:      slug,
		Page:      page,
		Content:   content,
		Format:    format,
		UpdatedAt: time.Now(),
	}

	_, err := svc.db.
		NewInsert().
		Model(note).
		On("CONFLICT (slug, page) DO UPDATE").
		Set("content = EXCLUDED.content").
		Set("format = EXCLUDED.format").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return errors.WithStack(err)
}

// ListNotesForBook returns every note for the book ordered by page.
func (svc *Service) ListNotesForBook(ctx context.Context, slug string) ([]*models.Note, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	noteList := []*models.Note{}
	err := svc.db.
		NewSelect().
		Model(&noteList).
		Where("n.slug = ?", slug).
		Order("n.page ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return noteList, nil
}

// DeleteNote removes the note for a book page. Deleting a page that has no
// note is a no-op.
func (svc *Service) DeleteNote(ctx context.Context, slug string, page int) error {
	svc.db.Acquire()
	defer svc.db.Release()

	_, err := svc.db.
		NewDelete().
		Model((*models.Note)(nil)).
		Where("n.slug = ?", slug).
		Where("n.page = ?", page).
		Exec(ctx)
	return errors.WithStack(err)
}

// SaveNoteImage upserts an image attachment keyed by (slug, page, filename)
// and returns its row id. When the upsert takes the update branch the
// original id comes back, so pasted-image references in note content keep
// resolving after a re-paste.
func (svc *Service) SaveNoteImage(ctx context.Context, slug string, page int, filename string, data []byte) (int, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	img := &models.NoteImage{
		NoteSlug:  slug,
		NotePage:  page,
		Filename:  filename,
		Data:      data,
		CreatedAt: time.Now(),
	}

	_, err := svc.db.
		NewInsert().
		Model(img).
		On("CONFLICT (note_slug, note_page, filename) DO UPDATE").
		Set("data = EXCLUDED.data").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return img.ID, nil
}

// GetNoteImage returns the attachment by id. Unlike GetNote, a missing image
// is an error: image ids only exist because a save handed them out, so a
// failed lookup means the reference is dangling.
func (svc *Service) GetNoteImage(ctx context.Context, id int) (*models.NoteImage, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	img := &models.NoteImage{}
	err := svc.db.
		NewSelect().
		Model(img).
		Where("ni.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("Image")
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return img, nil
}

// ExportNotesForBook renders the book's notes as a single markdown-flavored
// document, one "## Page N" section per note in page order.
func (svc *Service) ExportNotesForBook(ctx context.Context, slug string) (string, error) {
	noteList, err := svc.ListNotesForBook(ctx, slug)
	if err != nil {
		return "", errors.WithStack(err)
	}

	out := strings.Builder{}
	for _, note := range noteList {
		fmt.Fprintf(&out, "## Page %d\n\n%s\n\n", note.Page, note.Content)
	}

	return out.String(), nil
}

// ImportLegacyNotes loads the old flat-file JSON export, a map of
// "slug:page" keys to HTML content. The page number follows the last colon
// since slugs themselves may contain colons. Entries with unparseable keys
// or empty content are skipped; the rest upsert one at a time, so a failure
// partway through keeps the entries already written. Returns the number of
// notes written.
func (svc *Service) ImportLegacyNotes(ctx context.Context, jsonData []byte) (int, error) {
	legacy := map[string]string{}
	if err := json.Unmarshal(jsonData, &legacy); err != nil {
		return 0, errcodes.ValidationError(fmt.Sprintf("Invalid notes JSON: %s", err))
	}

	svc.db.Acquire()
	defer svc.db.Release()

	count := 0
	for key, content := range legacy {
		idx := strings.LastIndex(key, ":")
		if idx < 0 {
			continue
		}
		slug := key[:idx]
		page, err := strconv.Atoi(key[idx+1:])
		if err != nil {
			continue
		}
		// The legacy editor persisted cleared pages as empty paragraphs.
		if content == "" || content == "<p></p>" {
			continue
		}

		note := &models.Note{
			Slug:      slug,
			Page:      page,
			Content:   content,
			Format:    models.NoteFormatHTML,
			UpdatedAt: time.Now(),
		}
		_, err = svc.db.
			NewInsert().
			Model(note).
			On("CONFLICT (slug, page) DO UPDATE").
			Set("content = EXCLUDED.content").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return count, errors.WithStack(err)
		}
		count++
	}

	return count, nil
}
