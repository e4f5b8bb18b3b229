package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uibind/uibind/internal/adapters/config"
	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLoader_LoadPins_EmbeddedDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	set, err := loader.LoadPins("", "")
	require.NoError(t, err)
	require.NotEmpty(t, set.Release)

	libui, err := set.Lookup(domain.DepLibui)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/libui-ng/libui-ng.git", libui.Repo)
	assert.Equal(t, "42641e3d6bfb2c49ca4cc3b03d8ae277d9841a5d", libui.Revision)

	// Every build mode's dependencies must be pinned in the shipped table
	for _, dep := range []string{domain.DepLibui, domain.DepMeson, domain.DepNinja} {
		pin, err := set.Lookup(dep)
		require.NoError(t, err, "dependency %s missing from embedded table", dep)
		assert.NoError(t, pin.Validate())
	}
}

func TestLoader_LoadPins_ExplicitRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	set, err := loader.LoadPins("0.1.0", "")
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", set.Release)
}

func TestLoader_LoadPins_UnknownRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	_, err := loader.LoadPins("9.9.9", "")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrReleaseNotPinned)
}

func TestLoader_LoadPins_OverrideFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	dir := t.TempDir()
	createFile(t, dir, "pins.yaml", `
default: "dev"
releases:
  "dev":
    libui-ng:
      repo: https://example.com/fork/libui-ng.git
      revision: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
`)

	set, err := loader.LoadPins("", filepath.Join(dir, "pins.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "dev", set.Release)

	libui, err := set.Lookup(domain.DepLibui)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/fork/libui-ng.git", libui.Repo)
}

func TestLoader_LoadPins_OverrideFileMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	_, err := loader.LoadPins("", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrPinsReadFailed.Error())
}

func TestLoader_LoadPins_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "Invalid YAML Syntax",
			content:     "releases: [ INVALID",
			expectedErr: domain.ErrPinsParseFailed,
		},
		{
			name: "Short Revision",
			content: `
default: "dev"
releases:
  "dev":
    libui-ng:
      repo: https://example.com/libui-ng.git
      revision: 42641e3
`,
			expectedErr: domain.ErrPinInvalidRevision,
		},
		{
			name: "Branch Instead Of Commit",
			content: `
default: "dev"
releases:
  "dev":
    libui-ng:
      repo: https://example.com/libui-ng.git
      revision: master
`,
			expectedErr: domain.ErrPinInvalidRevision,
		},
		{
			name: "Missing Repository",
			content: `
default: "dev"
releases:
  "dev":
    libui-ng:
      revision: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
`,
			expectedErr: domain.ErrPinMissingRepo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))

			dir := t.TempDir()
			createFile(t, dir, "pins.yaml", tt.content)

			_, err := loader.LoadPins("", filepath.Join(dir, "pins.yaml"))
			require.Error(t, err)
			require.ErrorContains(t, err, tt.expectedErr.Error())
		})
	}
}
