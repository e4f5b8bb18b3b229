package domain

import "go.trai.ch/zerr"

// Features are the build-mode switches that control how the native library is
// obtained. Several are mutually exclusive; Validate enforces the rules before
// any filesystem or network work starts.
type Features struct {
	// Build compiles the library from pinned sources. When false the
	// pipeline only emits linkage against a system-installed copy.
	Build bool

	// FetchNinja fetches the pinned ninja sources and bootstraps the
	// binary instead of relying on a system installation.
	FetchNinja bool

	// SystemNinja uses the ninja found on PATH.
	SystemNinja bool

	// Toolchain compiles the sources directly with the platform C
	// toolchain, bypassing the meson/ninja build.
	Toolchain bool

	// MSBuild drives the build through the Visual Studio toolchain.
	// Windows only.
	MSBuild bool

	// Manifest embeds the common-controls application manifest into the
	// generated package. Only meaningful on Windows; inert elsewhere.
	Manifest bool
}

// DefaultFeatures returns the default feature set: build from pinned sources
// with a fetched ninja, manifest enabled.
func DefaultFeatures() Features {
	return Features{
		Build:      true,
		FetchNinja: true,
		Manifest:   true,
	}
}

// Validate checks the feature set against the target platform.
// It is pure: no I/O happens here.
func (f Features) Validate(t Target) error {
	if !t.Supported() {
		return zerr.With(ErrUnsupportedTarget, "target", t.String())
	}

	modes := 0
	for _, on := range []bool{f.FetchNinja, f.SystemNinja, f.Toolchain, f.MSBuild} {
		if on {
			modes++
		}
	}

	if !f.Build {
		if modes > 0 {
			return ErrBuildModeWithoutBuild
		}
		return nil
	}

	if modes == 0 {
		return ErrNoBuildMode
	}
	if modes > 1 {
		return ErrConflictingBuildModes
	}
	if f.MSBuild && t.OS != OSWindows {
		return zerr.With(ErrMSBuildRequiresWindows, "target", t.String())
	}
	if f.Toolchain && t.OS == OSWindows {
		return zerr.With(ErrToolchainUnsupportedOnWindows, "target", t.String())
	}

	return nil
}
