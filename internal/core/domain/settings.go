package domain

import "go.trai.ch/zerr"

// StagingPolicy decides what happens to an existing staging directory.
// Reuse-vs-clean is an explicit configuration choice rather than a heuristic:
// reuse trusts manifest-verified checkouts, clean wipes the staging tree
// before fetching.
type StagingPolicy string

const (
	// PolicyReuse keeps verified checkouts from earlier runs.
	PolicyReuse StagingPolicy = "reuse"
	// PolicyClean removes the staging directory before fetching.
	PolicyClean StagingPolicy = "clean"
)

// ParseStagingPolicy validates a policy read from configuration.
func ParseStagingPolicy(s string) (StagingPolicy, error) {
	switch StagingPolicy(s) {
	case PolicyReuse, PolicyClean:
		return StagingPolicy(s), nil
	default:
		return "", zerr.With(ErrInvalidStagingPolicy, "policy", s)
	}
}

// Settings are the fully resolved inputs of one pipeline run: defaults,
// overlaid by the configuration file, overlaid by command-line flags.
type Settings struct {
	Features Features
	Target   Target
	Profile  Profile
	Library  LibraryKind

	// StagingDir is the root of the staging tree.
	StagingDir string
	// StagingPolicy controls reuse of an existing staging tree.
	StagingPolicy StagingPolicy

	// OutDir is the directory the generated package is written to.
	OutDir string
	// Package is the name of the generated Go package.
	Package string

	// Release selects the pin table row. Defaults to the tool release.
	Release string
	// PinsPath optionally overrides the embedded pin table with a file.
	PinsPath string
}

// DefaultSettings returns the settings of a run with no configuration file
// and no flags: a static release build from pinned sources for the host
// platform. Release is left empty so the pin table's default row applies.
func DefaultSettings() *Settings {
	return &Settings{
		Features:      DefaultFeatures(),
		Target:        CurrentTarget(),
		Profile:       ProfileRelease,
		Library:       LibraryStatic,
		StagingDir:    DefaultStagingDir,
		StagingPolicy: PolicyReuse,
		OutDir:        DefaultOutDir,
		Package:       DefaultPackage,
	}
}

// Layout returns the staging layout for these settings.
func (s *Settings) Layout() StagingLayout {
	return NewStagingLayout(s.StagingDir)
}

// Overrides carries command-line values layered over loaded settings.
// Boolean fields are pointers so an unset flag leaves the setting alone.
type Overrides struct {
	OS            string
	Arch          string
	Profile       string
	Library       string
	StagingDir    string
	StagingPolicy string
	OutDir        string
	Package       string
	Release       string
	PinsPath      string

	Build       *bool
	FetchNinja  *bool
	SystemNinja *bool
	Toolchain   *bool
	MSBuild     *bool
	Manifest    *bool
}

// Apply overlays the overrides onto the settings. Choosing an alternative
// build mode on the command line implicitly turns the default fetched-ninja
// mode off, so a single flag expresses the switch.
func (s *Settings) Apply(o Overrides) error {
	if o.OS != "" {
		s.Target.OS = OS(o.OS)
	}
	if o.Arch != "" {
		s.Target.Arch = o.Arch
	}
	if o.Profile != "" {
		p, err := ParseProfile(o.Profile)
		if err != nil {
			return err
		}
		s.Profile = p
	}
	if o.Library != "" {
		k, err := ParseLibraryKind(o.Library)
		if err != nil {
			return err
		}
		s.Library = k
	}
	if o.StagingDir != "" {
		s.StagingDir = o.StagingDir
	}
	if o.StagingPolicy != "" {
		p, err := ParseStagingPolicy(o.StagingPolicy)
		if err != nil {
			return err
		}
		s.StagingPolicy = p
	}
	if o.OutDir != "" {
		s.OutDir = o.OutDir
	}
	if o.Package != "" {
		s.Package = o.Package
	}
	if o.Release != "" {
		s.Release = o.Release
	}
	if o.PinsPath != "" {
		s.PinsPath = o.PinsPath
	}

	if o.Build != nil {
		s.Features.Build = *o.Build
		if !*o.Build {
			s.Features.FetchNinja = false
			s.Features.SystemNinja = false
			s.Features.Toolchain = false
			s.Features.MSBuild = false
		}
	}
	applyMode := func(value *bool, field *bool) {
		if value == nil {
			return
		}
		*field = *value
		if *value {
			s.Features.FetchNinja = field == &s.Features.FetchNinja
			s.Features.SystemNinja = field == &s.Features.SystemNinja
			s.Features.Toolchain = field == &s.Features.Toolchain
			s.Features.MSBuild = field == &s.Features.MSBuild
		}
	}
	applyMode(o.FetchNinja, &s.Features.FetchNinja)
	applyMode(o.SystemNinja, &s.Features.SystemNinja)
	applyMode(o.Toolchain, &s.Features.Toolchain)
	applyMode(o.MSBuild, &s.Features.MSBuild)
	if o.Manifest != nil {
		s.Features.Manifest = *o.Manifest
	}

	return nil
}
