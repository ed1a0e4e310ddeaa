package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marginbooks/margin/pkg/fileutils"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// BrowseOptions has the same structure as BrowseQuery to allow direct type conversion.
type BrowseOptions BrowseQuery

// Browse lists one level of the filesystem for the folder picker. Only
// directories and PDF files appear: the picker exists to choose shelf
// folders, and the PDFs are shown so the user can tell a shelf from an
// empty folder.
func (s *Service) Browse(opts BrowseOptions) (*BrowseResponse, error) {
	path := opts.Path
	if path == "" {
		path = "/"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// Resolve symlinks to prevent directory traversal.
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		realPath = absPath
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, os.ErrInvalid
	}

	dirEntries, err := os.ReadDir(realPath)
	if err != nil {
		return nil, err
	}

	// Empty must serialize as [], not null.
	entries := []Entry{}
	for _, de := range dirEntries {
		name := de.Name()

		if !de.IsDir() && !fileutils.IsPDF(name) {
			continue
		}
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(opts.Search)) {
			continue
		}

		entries = append(entries, Entry{
			Name:  name,
			Path:  filepath.Join(realPath, name),
			IsDir: de.IsDir(),
			IsPDF: !de.IsDir(),
		})
	}

	// Directories first, then files, alphabetically within each.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	total := len(entries)

	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	paginatedEntries := entries[start:end]
	hasMore := end < total

	parentPath := ""
	if realPath != "/" {
		parentPath = filepath.Dir(realPath)
	}

	return &BrowseResponse{
		CurrentPath: realPath,
		ParentPath:  parentPath,
		Entries:     paginatedEntries,
		Total:       total,
		HasMore:     hasMore,
	}, nil
}
