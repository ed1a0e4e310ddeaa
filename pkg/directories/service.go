package directories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marginbooks/margin/pkg/database"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/marginbooks/margin/pkg/models"
	"github.com/pkg/errors"
)

type Service struct {
	db *database.DB
}

func NewService(db *database.DB) *Service {
	return &Service{db}
}

// ListDirectories returns every registered directory in registration order.
func (svc *Service) ListDirectories(ctx context.Context) ([]*models.Directory, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	dirs := []*models.Directory{}
	err := svc.db.
		NewSelect().
		Model(&dirs).
		Order("d.added_at ASC").
		Order("d.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return dirs, nil
}

// AddDirectory validates that path points at an existing directory, derives
// the display label from the final path segment, and inserts. A duplicate
// path surfaces as a Conflict carrying the store's message.
func (svc *Service) AddDirectory(ctx context.Context, path string) (*models.Directory, error) {
	// Existence check happens outside the store lock.
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, errcodes.ValidationError(fmt.Sprintf("Not a directory: %s", path))
	}

	label := filepath.Base(filepath.Clean(path))
	if label == "." || label == string(filepath.Separator) {
		label = path
	}

	dir := &models.Directory{
		Path:    path,
		Label:   label,
		AddedAt: time.Now(),
	}

	svc.db.Acquire()
	defer svc.db.Release()

	_, err = svc.db.
		NewInsert().
		Model(dir).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errcodes.IsUniqueViolation(err) {
			return nil, errcodes.Conflict(err.Error())
		}
		return nil, errors.WithStack(err)
	}

	return dir, nil
}

// RemoveDirectory deletes by id. Removing an unknown id is a no-op, and
// notes/tags for textbooks that lived under the directory are intentionally
// left behind: textbooks are virtual, so there is no referential anchor to
// cascade from.
func (svc *Service) RemoveDirectory(ctx context.Context, id int) error {
	svc.db.Acquire()
	defer svc.db.Release()

	_, err := svc.db.
		NewDelete().
		Model((*models.Directory)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}
