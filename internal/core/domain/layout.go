package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "uibind.yaml"

	// DefaultStagingDir is the staging directory used when none is configured.
	DefaultStagingDir = ".uibind"

	// DefaultOutDir is the directory the generated package is written to
	// when none is configured.
	DefaultOutDir = "ui"

	// DefaultPackage is the name of the generated Go package when none is
	// configured.
	DefaultPackage = "ui"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// StagingLayout maps the staging directory structure. Every pipeline
// component derives paths from here so the layout is defined exactly once.
type StagingLayout struct {
	Root string
}

// NewStagingLayout returns the layout rooted at dir, or at DefaultStagingDir
// when dir is empty.
func NewStagingLayout(dir string) StagingLayout {
	if dir == "" {
		dir = DefaultStagingDir
	}
	return StagingLayout{Root: dir}
}

// SourceDir returns the checkout directory for a pinned dependency.
func (l StagingLayout) SourceDir(dep string) string {
	return filepath.Join(l.Root, dep)
}

// BuildDir returns the native build directory inside the library checkout.
func (l StagingLayout) BuildDir() string {
	return filepath.Join(l.SourceDir(DepLibui), "build")
}

// MesonOutDir returns the directory meson places built libraries in.
func (l StagingLayout) MesonOutDir() string {
	return filepath.Join(l.BuildDir(), "meson-out")
}

// ToolchainOutDir returns the output directory of the direct-toolchain build.
func (l StagingLayout) ToolchainOutDir() string {
	return filepath.Join(l.BuildDir(), "out")
}

// ArtifactDir returns the directory the strategy's build leaves the compiled
// library in. Linkage can be regenerated from here without rebuilding.
// Only meaningful for strategies that build from source.
func (l StagingLayout) ArtifactDir(s Strategy) string {
	if s == StrategyToolchain {
		return l.ToolchainOutDir()
	}
	return l.MesonOutDir()
}

// MesonScript returns the entry script of the fetched meson checkout.
func (l StagingLayout) MesonScript() string {
	return filepath.Join(l.SourceDir(DepMeson), "meson.py")
}

// NinjaBinary returns the path of the bootstrapped ninja executable.
func (l StagingLayout) NinjaBinary(t Target) string {
	return filepath.Join(l.SourceDir(DepNinja), "ninja"+t.ExeSuffix())
}

// ManifestPath returns the staging manifest recording fetched revisions and
// tree fingerprints.
func (l StagingLayout) ManifestPath() string {
	return filepath.Join(l.Root, "manifest.json")
}

// BuildPlan is everything the native build invoker needs to compile the
// library for one pipeline run.
type BuildPlan struct {
	Strategy Strategy
	Target   Target
	Profile  Profile
	Library  LibraryKind
	Layout   StagingLayout
}
