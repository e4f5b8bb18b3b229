package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uibind/uibind/internal/adapters/fs"
)

func TestVerifier_FindAny(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "libui.a"), []byte("archive"), 0o600))

	// Case 1: first candidate missing, second present
	path, found, err := verifier.FindAny(tmpDir, []string{"ui.lib", "libui.a"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, filepath.Join(tmpDir, "libui.a"), path)

	// Case 2: no candidate present
	_, found, err = verifier.FindAny(tmpDir, []string{"ui.lib", "libui.dll"})
	require.NoError(t, err)
	assert.False(t, found)

	// Case 3: empty candidate list
	_, found, err = verifier.FindAny(tmpDir, nil)
	require.NoError(t, err)
	assert.False(t, found)
}
