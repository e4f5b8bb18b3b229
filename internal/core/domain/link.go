package domain

import "go.trai.ch/zerr"

// LinkSpec is the platform linkage a consuming cgo build needs. It is pure
// data; the link adapter renders it into cgo directives.
type LinkSpec struct {
	// LibDirs are -L search paths. Empty for system-library linkage.
	LibDirs []string
	// Libs are -l library names, the bound library first.
	Libs []string
	// Frameworks are darwin -framework entries.
	Frameworks []string
	// PkgConfig are pkg-config package names resolved by cgo itself.
	PkgConfig []string
}

// windowsLibs is the import-library set the native library requires on
// Windows.
var windowsLibs = []string{
	"user32", "kernel32", "gdi32", "comctl32", "uxtheme", "msimg32",
	"comdlg32", "d2d1", "dwrite", "ole32", "oleaut32", "oleacc",
	"uuid", "windowscodecs",
}

// LinkSpecFor computes the linkage for a strategy, target and artifact.
// The artifact is ignored for system-library linkage.
func LinkSpecFor(strategy Strategy, t Target, artifact Artifact) (LinkSpec, error) {
	if !t.Supported() {
		return LinkSpec{}, zerr.With(ErrUnsupportedTarget, "target", t.String())
	}

	spec := LinkSpec{Libs: []string{LibName}}
	if strategy.BuildsFromSource() {
		spec.LibDirs = []string{artifact.Dir}
	}

	switch t.OS {
	case OSLinux:
		spec.PkgConfig = []string{"gtk+-3.0"}
		spec.Libs = append(spec.Libs, "m")
	case OSDarwin:
		spec.Frameworks = []string{"Cocoa"}
	case OSWindows:
		spec.Libs = append(spec.Libs, windowsLibs...)
	}

	return spec, nil
}
