package models

import (
	"github.com/uptrace/bun"
)

// Tag is a named, colored label that can be attached to any number of books.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID    int    `bun:",pk,nullzero" json:"id"`
	Name  string `bun:",nullzero" json:"name"`
	Color string `bun:",nullzero" json:"color"`
}

// BookTag joins a virtual book (by slug) to a tag. The unique constraint on
// (book_slug, tag_id) makes tagging idempotent at the store level.
type BookTag struct {
	bun.BaseModel `bun:"table:book_tags,alias:bt"`

	ID       int    `bun:",pk,nullzero" json:"id"`
	BookSlug string `bun:",nullzero" json:"book_slug"`
	TagID    int    `bun:",nullzero" json:"tag_id"`
	Tag      *Tag   `bun:"rel:belongs-to,join:tag_id=id" json:"tag,omitempty"`
}

// BookTagMapping groups a book's full tag set under its slug. It is a
// projection built from book_tags joined with tags, never stored.
type BookTagMapping struct {
	Slug string `json:"slug"`
	Tags []*Tag `json:"tags"`
}
