package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uibind/uibind/internal/adapters/fs"
)

func TestResolver_Resolve_Success(t *testing.T) {
	tmpDir := t.TempDir()

	// Create test files
	files := []string{"window.c", "button.c", "notes.md"}
	for _, f := range files {
		err := os.WriteFile(filepath.Join(tmpDir, f), []byte("content"), 0o600)
		require.NoError(t, err)
	}

	resolver := fs.NewResolver()

	resolved, err := resolver.Resolve(tmpDir, []string{"*.c"})
	require.NoError(t, err)

	// Should match button.c and window.c (sorted)
	assert.Len(t, resolved, 2)
	assert.Contains(t, resolved[0], "button.c")
	assert.Contains(t, resolved[1], "window.c")
}

func TestResolver_Resolve_GlobError(t *testing.T) {
	tmpDir := t.TempDir()
	resolver := fs.NewResolver()

	// Malformed glob pattern (contains invalid characters)
	_, err := resolver.Resolve(tmpDir, []string{"["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to glob path")
}

func TestResolver_Resolve_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	resolver := fs.NewResolver()

	// Pattern that matches nothing
	_, err := resolver.Resolve(tmpDir, []string{"*.nonexistent"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern matched no files")
}

func TestResolver_Resolve_MultiplePatterns(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "unix"), 0o750))
	files := []string{"common/a.c", "common/b.c", "unix/window.c", "unix/menu.c"}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
	}

	resolver := fs.NewResolver()

	resolved, err := resolver.Resolve(tmpDir, []string{"common/*.c", "unix/*.c"})
	require.NoError(t, err)

	// Should match all 4 files
	assert.Len(t, resolved, 4)
}

func TestResolver_Resolve_Deduplication(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "main.c"), []byte("content"), 0o600)
	require.NoError(t, err)

	resolver := fs.NewResolver()

	// Duplicate patterns resolve to one entry
	resolved, err := resolver.Resolve(tmpDir, []string{"main.c", "*.c", "main.c"})
	require.NoError(t, err)

	assert.Len(t, resolved, 1)
	assert.Contains(t, resolved[0], "main.c")
}

func TestResolver_Resolve_Sorting(t *testing.T) {
	tmpDir := t.TempDir()

	// Create test files in non-alphabetical order
	files := []string{"z.c", "a.c", "m.c"}
	for _, f := range files {
		err := os.WriteFile(filepath.Join(tmpDir, f), []byte("content"), 0o600)
		require.NoError(t, err)
	}

	resolver := fs.NewResolver()

	resolved, err := resolver.Resolve(tmpDir, []string{"*.c"})
	require.NoError(t, err)

	// Should be sorted alphabetically
	assert.Len(t, resolved, 3)
	assert.Contains(t, resolved[0], "a.c")
	assert.Contains(t, resolved[1], "m.c")
	assert.Contains(t, resolved[2], "z.c")
}
