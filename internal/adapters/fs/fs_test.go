package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uibind/uibind/internal/adapters/fs"
)

// writeTree creates the given relative-path/content pairs under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		".git/config":  "git config",
		"ignored/file": "ignored content",
		"src/ui.c":     "int main() {}",
		"ui.h":         "typedef struct uiWindow uiWindow;",
	})

	walker := fs.NewWalker()
	ignores := []string{"ignored"}

	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, ignores) {
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		files[rel] = true
	}

	assert.False(t, files[filepath.Join(".git", "config")], "expected .git/config to be skipped")
	assert.False(t, files[filepath.Join("ignored", "file")], "expected ignored/file to be skipped")
	assert.True(t, files[filepath.Join("src", "ui.c")], "expected src/ui.c to be found")
	assert.True(t, files["ui.h"], "expected ui.h to be found")
}

func TestWalker_WalkFiles_IgnoredFilePattern(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"keep.c":    "kept",
		"skip.tmp":  "skipped",
		"other.tmp": "skipped too",
	})

	walker := fs.NewWalker()

	var got []string
	for path := range walker.WalkFiles(tmpDir, []string{"*.tmp"}) {
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		got = append(got, rel)
	}

	assert.Equal(t, []string{"keep.c"}, got)
}

func TestHasher_FileHash(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "content.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	hasher := fs.NewHasher(fs.NewWalker())

	hash1, err := hasher.FileHash(path)
	require.NoError(t, err)
	assert.NotZero(t, hash1, "expected non-zero hash")

	// Verify determinism
	hash2, err := hasher.FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "expected deterministic hash")
}

func TestHasher_FileHash_Missing(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	_, err := hasher.FileHash(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to open file")
}

func TestHasher_TreeFingerprint(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	tree := map[string]string{
		"ui.h":          "typedef struct uiWindow uiWindow;",
		"src/window.c":  "void uiWindowShow() {}",
		"src/button.c":  "void uiButtonOnClicked() {}",
		"meson.build":   "project('libui')",
		".git/HEAD":     "ref: refs/heads/main",
		".git/ORIG_MSG": "checkout",
	}

	t.Run("deterministic", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, tree)

		fp1, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)
		require.Len(t, fp1, 16, "fingerprint should be a fixed-width hex string")

		fp2, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)
		assert.Equal(t, fp1, fp2)
	})

	t.Run("identical trees at different roots", func(t *testing.T) {
		dirA := t.TempDir()
		dirB := t.TempDir()
		writeTree(t, dirA, tree)
		writeTree(t, dirB, tree)

		fpA, err := hasher.TreeFingerprint(dirA)
		require.NoError(t, err)
		fpB, err := hasher.TreeFingerprint(dirB)
		require.NoError(t, err)
		assert.Equal(t, fpA, fpB, "identical trees must fingerprint identically")
	})

	t.Run("content change changes fingerprint", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, tree)

		before, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "window.c"), []byte("void uiWindowHide() {}"), 0o600))

		after, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})

	t.Run("rename changes fingerprint", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, tree)

		before, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)

		require.NoError(t, os.Rename(
			filepath.Join(dir, "src", "window.c"),
			filepath.Join(dir, "src", "frame.c"),
		))

		after, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)
		assert.NotEqual(t, before, after, "paths are part of the fingerprint")
	})

	t.Run("git metadata excluded", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, tree)

		before, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref: refs/heads/detached"), 0o600))

		after, err := hasher.TreeFingerprint(dir)
		require.NoError(t, err)
		assert.Equal(t, before, after, ".git contents must not affect the fingerprint")
	})

	t.Run("single file root", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ui.h")
		require.NoError(t, os.WriteFile(path, []byte("header"), 0o600))

		fp, err := hasher.TreeFingerprint(path)
		require.NoError(t, err)
		assert.Len(t, fp, 16)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := hasher.TreeFingerprint(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to stat path")
	})
}
