package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Directory is a filesystem root the user registered for textbook scanning.
type Directory struct {
	bun.BaseModel `bun:"table:directories,alias:d"`

	ID      int       `bun:",pk,nullzero" json:"id"`
	Path    string    `bun:",nullzero" json:"path"`
	Label   string    `bun:",nullzero" json:"label"`
	AddedAt time.Time `json:"added_at"`
}
