package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowse_EmptyDirectory(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	emptyDir := filepath.Join(tempDir, "empty")
	require.NoError(t, os.Mkdir(emptyDir, 0755))

	// Resolve symlinks for comparison (macOS /var -> /private/var).
	resolvedEmptyDir, err := filepath.EvalSymlinks(emptyDir)
	require.NoError(t, err)
	resolvedTempDir, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err)

	svc := NewService()
	resp, err := svc.Browse(BrowseOptions{
		Path:  emptyDir,
		Limit: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, resolvedEmptyDir, resp.CurrentPath)
	assert.Equal(t, resolvedTempDir, resp.ParentPath)
	assert.Equal(t, 0, resp.Total)
	assert.False(t, resp.HasMore)

	// Entries must be an empty slice, not nil: nil serializes as JSON null.
	assert.NotNil(t, resp.Entries)
	assert.Empty(t, resp.Entries)
}

func TestBrowse_OnlyDirectoriesAndPDFs(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "shelf"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "book.pdf"), []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "readme.txt"), []byte("x"), 0644))

	svc := NewService()
	resp, err := svc.Browse(BrowseOptions{
		Path:  tempDir,
		Limit: 50,
	})
	require.NoError(t, err)

	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "shelf", resp.Entries[0].Name)
	assert.True(t, resp.Entries[0].IsDir)
	assert.False(t, resp.Entries[0].IsPDF)
	assert.Equal(t, "book.pdf", resp.Entries[1].Name)
	assert.False(t, resp.Entries[1].IsDir)
	assert.True(t, resp.Entries[1].IsPDF)
}

func TestBrowse_DirectoriesSortBeforeFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "aaa.pdf"), []byte("%PDF"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "zzz"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "Books"), 0755))

	svc := NewService()
	resp, err := svc.Browse(BrowseOptions{
		Path:  tempDir,
		Limit: 50,
	})
	require.NoError(t, err)

	require.Len(t, resp.Entries, 3)
	assert.Equal(t, "Books", resp.Entries[0].Name)
	assert.Equal(t, "zzz", resp.Entries[1].Name)
	assert.Equal(t, "aaa.pdf", resp.Entries[2].Name)
}

func TestBrowse_HiddenFiltering(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(tempDir, ".hidden"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "visible"), 0755))

	svc := NewService()

	resp, err := svc.Browse(BrowseOptions{Path: tempDir, Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "visible", resp.Entries[0].Name)

	resp, err = svc.Browse(BrowseOptions{Path: tempDir, Limit: 50, ShowHidden: true})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
}

func TestBrowse_Search(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "Mathematics"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "History"), 0755))

	svc := NewService()
	resp, err := svc.Browse(BrowseOptions{Path: tempDir, Limit: 50, Search: "math"})
	require.NoError(t, err)

	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Mathematics", resp.Entries[0].Name)
}

func TestBrowse_Pagination(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, os.Mkdir(filepath.Join(tempDir, name), 0755))
	}

	svc := NewService()

	resp, err := svc.Browse(BrowseOptions{Path: tempDir, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 3)
	assert.Equal(t, 4, resp.Total)
	assert.True(t, resp.HasMore)

	resp, err = svc.Browse(BrowseOptions{Path: tempDir, Limit: 3, Offset: 3})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "d", resp.Entries[0].Name)
	assert.False(t, resp.HasMore)
}

func TestBrowse_NotADirectory(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "file.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF"), 0644))

	svc := NewService()
	_, err := svc.Browse(BrowseOptions{Path: file, Limit: 50})
	assert.ErrorIs(t, err, os.ErrInvalid)
}

func TestBrowse_MissingPath(t *testing.T) {
	t.Parallel()

	svc := NewService()
	_, err := svc.Browse(BrowseOptions{Path: filepath.Join(t.TempDir(), "nope"), Limit: 50})
	assert.True(t, os.IsNotExist(err))
}
