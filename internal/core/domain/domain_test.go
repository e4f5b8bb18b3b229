package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uibind/uibind/internal/core/domain"
)

func TestPin_Validate(t *testing.T) {
	valid := domain.Pin{
		Name:     domain.DepLibui,
		Repo:     "https://github.com/libui-ng/libui-ng.git",
		Revision: "42641e3d6bfb2c49ca4cc3b03d8ae277d9841a5d",
	}

	t.Run("valid pin", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("missing repo", func(t *testing.T) {
		pin := valid
		pin.Repo = ""
		require.ErrorIs(t, pin.Validate(), domain.ErrPinMissingRepo)
	})

	t.Run("short revision", func(t *testing.T) {
		pin := valid
		pin.Revision = "42641e3d"
		require.ErrorIs(t, pin.Validate(), domain.ErrPinInvalidRevision)
	})

	t.Run("branch name is not a revision", func(t *testing.T) {
		pin := valid
		pin.Revision = "main"
		require.ErrorIs(t, pin.Validate(), domain.ErrPinInvalidRevision)
	})

	t.Run("uppercase hex is rejected", func(t *testing.T) {
		pin := valid
		pin.Revision = "42641E3D6BFB2C49CA4CC3B03D8AE277D9841A5D"
		require.ErrorIs(t, pin.Validate(), domain.ErrPinInvalidRevision)
	})
}

func TestPinSet_Lookup(t *testing.T) {
	set := domain.PinSet{
		Release: "0.1.0",
		Pins: map[string]domain.Pin{
			domain.DepLibui: {Name: domain.DepLibui, Repo: "r", Revision: "42641e3d6bfb2c49ca4cc3b03d8ae277d9841a5d"},
		},
	}

	pin, err := set.Lookup(domain.DepLibui)
	require.NoError(t, err)
	assert.Equal(t, domain.DepLibui, pin.Name)

	_, err = set.Lookup(domain.DepNinja)
	require.ErrorIs(t, err, domain.ErrDependencyNotPinned)
}

func TestExecResult_Tail(t *testing.T) {
	res := domain.ExecResult{Output: []byte("one\ntwo\nthree\nfour\n")}

	assert.Equal(t, "three\nfour", res.Tail(2))
	assert.Equal(t, "one\ntwo\nthree\nfour", res.Tail(10))
	assert.Empty(t, domain.ExecResult{}.Tail(3))
}

func TestStagingLayout(t *testing.T) {
	layout := domain.NewStagingLayout("")
	assert.Equal(t, domain.DefaultStagingDir, layout.Root)

	layout = domain.NewStagingLayout("stage")
	assert.Equal(t, filepath.Join("stage", "libui-ng"), layout.SourceDir(domain.DepLibui))
	assert.Equal(t, filepath.Join("stage", "libui-ng", "build", "meson-out"), layout.MesonOutDir())
	assert.Equal(t, filepath.Join("stage", "meson", "meson.py"), layout.MesonScript())
	assert.Equal(t, filepath.Join("stage", "manifest.json"), layout.ManifestPath())

	linux := domain.Target{OS: domain.OSLinux, Arch: "amd64"}
	windows := domain.Target{OS: domain.OSWindows, Arch: "amd64"}
	assert.Equal(t, filepath.Join("stage", "ninja", "ninja"), layout.NinjaBinary(linux))
	assert.Equal(t, filepath.Join("stage", "ninja", "ninja.exe"), layout.NinjaBinary(windows))

	assert.Equal(t, layout.MesonOutDir(), layout.ArtifactDir(domain.StrategyNinjaFetched))
	assert.Equal(t, layout.MesonOutDir(), layout.ArtifactDir(domain.StrategyNinjaSystem))
	assert.Equal(t, layout.MesonOutDir(), layout.ArtifactDir(domain.StrategyMSBuild))
	assert.Equal(t, layout.ToolchainOutDir(), layout.ArtifactDir(domain.StrategyToolchain))
}

func TestStage_Title(t *testing.T) {
	titles := make(map[string]bool)
	for _, stage := range domain.Stages() {
		title := stage.Title()
		assert.NotEmpty(t, title)
		assert.False(t, titles[title], "duplicate title %q", title)
		titles[title] = true
	}
	assert.Equal(t, "fetch sources", domain.StageFetch.Title())
}

func TestLinkSpecFor(t *testing.T) {
	artifact := domain.Artifact{Dir: "/staging/libui-ng/build/meson-out", Name: "ui", Kind: domain.LibraryStatic}

	t.Run("linux built from source", func(t *testing.T) {
		spec, err := domain.LinkSpecFor(domain.StrategyNinjaFetched, domain.Target{OS: domain.OSLinux, Arch: "amd64"}, artifact)
		require.NoError(t, err)
		assert.Equal(t, []string{artifact.Dir}, spec.LibDirs)
		assert.Equal(t, []string{"ui", "m"}, spec.Libs)
		assert.Equal(t, []string{"gtk+-3.0"}, spec.PkgConfig)
		assert.Empty(t, spec.Frameworks)
	})

	t.Run("darwin built from source", func(t *testing.T) {
		spec, err := domain.LinkSpecFor(domain.StrategyNinjaSystem, domain.Target{OS: domain.OSDarwin, Arch: "arm64"}, artifact)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cocoa"}, spec.Frameworks)
		assert.Equal(t, []string{"ui"}, spec.Libs)
	})

	t.Run("windows carries the import library set", func(t *testing.T) {
		spec, err := domain.LinkSpecFor(domain.StrategyMSBuild, domain.Target{OS: domain.OSWindows, Arch: "amd64"}, artifact)
		require.NoError(t, err)
		assert.Contains(t, spec.Libs, "comctl32")
		assert.Contains(t, spec.Libs, "windowscodecs")
		assert.Equal(t, "ui", spec.Libs[0])
	})

	t.Run("system library has no search path", func(t *testing.T) {
		spec, err := domain.LinkSpecFor(domain.StrategySystemLibrary, domain.Target{OS: domain.OSLinux, Arch: "amd64"}, domain.Artifact{})
		require.NoError(t, err)
		assert.Empty(t, spec.LibDirs)
		assert.Equal(t, []string{"gtk+-3.0"}, spec.PkgConfig)
	})

	t.Run("unsupported target", func(t *testing.T) {
		_, err := domain.LinkSpecFor(domain.StrategyNinjaFetched, domain.Target{OS: "freebsd", Arch: "amd64"}, artifact)
		require.ErrorIs(t, err, domain.ErrUnsupportedTarget)
	})
}

func TestArtifact_LibFileCandidates(t *testing.T) {
	linux := domain.Target{OS: domain.OSLinux, Arch: "amd64"}
	darwin := domain.Target{OS: domain.OSDarwin, Arch: "arm64"}
	windows := domain.Target{OS: domain.OSWindows, Arch: "amd64"}

	static := domain.Artifact{Name: "ui", Kind: domain.LibraryStatic}
	shared := domain.Artifact{Name: "ui", Kind: domain.LibraryShared}

	assert.Equal(t, []string{"libui.a"}, static.LibFileCandidates(linux))
	assert.Equal(t, []string{"libui.a", "ui.lib"}, static.LibFileCandidates(windows))
	assert.Equal(t, []string{"libui.so"}, shared.LibFileCandidates(linux))
	assert.Equal(t, []string{"libui.dylib"}, shared.LibFileCandidates(darwin))
	assert.Equal(t, []string{"ui.dll", "libui.dll"}, shared.LibFileCandidates(windows))
}

func TestSettings_Apply(t *testing.T) {
	base := func() domain.Settings {
		return domain.Settings{
			Features:      domain.DefaultFeatures(),
			Target:        domain.Target{OS: domain.OSLinux, Arch: "amd64"},
			Profile:       domain.ProfileRelease,
			Library:       domain.LibraryStatic,
			StagingDir:    domain.DefaultStagingDir,
			StagingPolicy: domain.PolicyReuse,
			OutDir:        "ui",
			Package:       "ui",
			Release:       "0.1.0",
		}
	}

	boolPtr := func(b bool) *bool { return &b }

	t.Run("selecting an alternative mode clears the default", func(t *testing.T) {
		s := base()
		require.NoError(t, s.Apply(domain.Overrides{SystemNinja: boolPtr(true)}))

		assert.False(t, s.Features.FetchNinja)
		assert.True(t, s.Features.SystemNinja)

		strategy, err := domain.SelectStrategy(s.Features, s.Target)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyNinjaSystem, strategy)
	})

	t.Run("disabling build clears modes", func(t *testing.T) {
		s := base()
		require.NoError(t, s.Apply(domain.Overrides{Build: boolPtr(false)}))

		strategy, err := domain.SelectStrategy(s.Features, s.Target)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategySystemLibrary, strategy)
	})

	t.Run("scalar overrides", func(t *testing.T) {
		s := base()
		require.NoError(t, s.Apply(domain.Overrides{
			OS:            "windows",
			Arch:          "arm64",
			Profile:       "debug",
			Library:       "shared",
			StagingDir:    "tmp/stage",
			StagingPolicy: "clean",
			Package:       "libui",
			Release:       "0.2.0",
		}))

		assert.Equal(t, domain.OSWindows, s.Target.OS)
		assert.Equal(t, "arm64", s.Target.Arch)
		assert.Equal(t, domain.ProfileDebug, s.Profile)
		assert.Equal(t, domain.LibraryShared, s.Library)
		assert.Equal(t, "tmp/stage", s.StagingDir)
		assert.Equal(t, domain.PolicyClean, s.StagingPolicy)
		assert.Equal(t, "libui", s.Package)
		assert.Equal(t, "0.2.0", s.Release)
	})

	t.Run("invalid override values are rejected", func(t *testing.T) {
		s := base()
		require.ErrorIs(t, s.Apply(domain.Overrides{Profile: "fast"}), domain.ErrInvalidProfile)
		require.ErrorIs(t, s.Apply(domain.Overrides{Library: "header-only"}), domain.ErrInvalidLibraryKind)
		require.ErrorIs(t, s.Apply(domain.Overrides{StagingPolicy: "maybe"}), domain.ErrInvalidStagingPolicy)
	})

	t.Run("unset overrides leave settings alone", func(t *testing.T) {
		s := base()
		require.NoError(t, s.Apply(domain.Overrides{}))
		assert.Equal(t, base(), s)
	})
}

func TestTarget_PlatformHeader(t *testing.T) {
	assert.Equal(t, "ui_unix.h", domain.Target{OS: domain.OSLinux}.PlatformHeader())
	assert.Equal(t, "ui_darwin.h", domain.Target{OS: domain.OSDarwin}.PlatformHeader())
	assert.Equal(t, "ui_windows.h", domain.Target{OS: domain.OSWindows}.PlatformHeader())
}
