package textbooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marginbooks/margin/pkg/database"
	"github.com/marginbooks/margin/pkg/directories"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/marginbooks/margin/pkg/fileutils"
	"github.com/marginbooks/margin/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type Service struct {
	directoryService *directories.Service
}

func NewService(db *database.DB) *Service {
	return &Service{directoryService: directories.NewService(db)}
}

// ListTextbooks projects the registered directories onto virtual textbook
// records. The registry read happens under the store lock; the filesystem
// scan runs outside it. Directories missing from disk or unreadable yield
// zero textbooks without aborting the rest of the scan.
func (svc *Service) ListTextbooks(ctx context.Context) ([]*models.Textbook, error) {
	dirs, err := svc.directoryService.ListDirectories(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	log := logger.FromContext(ctx)
	textbooks := []*models.Textbook{}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir.Path)
		if err != nil {
			log.Warn("skipping unreadable directory", logger.Data{"path": dir.Path, "error": err.Error()})
			continue
		}

		// Direct children only; subfolders are never recursed into.
		for _, entry := range entries {
			if !entry.Type().IsRegular() || !fileutils.IsPDF(entry.Name()) {
				continue
			}

			name := entry.Name()
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			textbooks = append(textbooks, &models.Textbook{
				Slug:     fileutils.TextbookSlug(dir.ID, stem),
				Title:    fileutils.TitleFromStem(stem),
				File:     name,
				DirID:    dir.ID,
				DirPath:  dir.Path,
				FullPath: filepath.Join(dir.Path, name),
			})
		}
	}

	return textbooks, nil
}

// RenameTextbook renames the PDF within its parent directory, appending a
// .pdf extension when the new name lacks one. The resulting slug changes, so
// notes and tags keyed to the old slug are orphaned; that is the documented
// tradeoff of virtual textbooks.
func (svc *Service) RenameTextbook(fullPath, newName string) error {
	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		return errcodes.ValidationError(fmt.Sprintf("File not found: %s", fullPath))
	}

	newPath := filepath.Join(filepath.Dir(fullPath), fileutils.EnsurePDFExt(newName))
	return errors.WithStack(os.Rename(fullPath, newPath))
}

// DeleteTextbook removes the PDF from disk. Note and tag rows keyed to its
// slug persist.
func (svc *Service) DeleteTextbook(fullPath string) error {
	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		return errcodes.ValidationError(fmt.Sprintf("File not found: %s", fullPath))
	}

	return errors.WithStack(os.Remove(fullPath))
}

// ReadFileBytes returns the raw contents of any absolute path the caller
// supplies. There is no sandboxing; the caller is trusted.
func (svc *Service) ReadFileBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errcodes.NotFound("File")
		}
		return nil, errors.WithStack(err)
	}
	return data, nil
}
