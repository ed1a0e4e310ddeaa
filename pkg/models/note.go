package models

import (
	"time"

	"github.com/uptrace/bun"
)

// NoteFormatHTML is the content encoding written by the rich-text editor and
// by the legacy JSON import.
const NoteFormatHTML = "html"

// Note is a rich-text annotation attached to one page of one textbook. The
// slug is a plain string key, not a foreign key: textbooks are virtual and
// have no persisted row to reference.
type Note struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	Slug      string    `bun:",nullzero" json:"slug"`
	Page      int       `json:"page"`
	Content   string    `bun:",nullzero" json:"content"`
	Format    string    `bun:",nullzero" json:"format"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteImage is a binary attachment scoped to one note's slug+page+filename.
// Data is never serialized into list responses; image bytes are served raw
// by id.
type NoteImage struct {
	bun.BaseModel `bun:"table:note_images,alias:ni"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	NoteSlug  string    `bun:",nullzero" json:"note_slug"`
	NotePage  int       `json:"note_page"`
	Filename  string    `bun:",nullzero" json:"filename"`
	Data      []byte    `bun:",nullzero" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
