package domain

import "go.trai.ch/zerr"

// LibraryKind selects how the native library is produced and linked.
type LibraryKind string

const (
	// LibraryStatic builds and links a static archive.
	LibraryStatic LibraryKind = "static"
	// LibraryShared builds and links a shared library.
	LibraryShared LibraryKind = "shared"
)

// ParseLibraryKind validates a library kind read from configuration.
func ParseLibraryKind(s string) (LibraryKind, error) {
	switch LibraryKind(s) {
	case LibraryStatic, LibraryShared:
		return LibraryKind(s), nil
	default:
		return "", zerr.With(ErrInvalidLibraryKind, "library", s)
	}
}

// DefaultLibraryArg returns the value passed to meson's --default-library.
func (k LibraryKind) DefaultLibraryArg() string {
	return string(k)
}

// Profile selects the optimization profile of the native build.
type Profile string

const (
	// ProfileRelease builds with optimizations.
	ProfileRelease Profile = "release"
	// ProfileDebug builds with debug info and no optimizations.
	ProfileDebug Profile = "debug"
)

// ParseProfile validates a profile read from configuration.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileRelease, ProfileDebug:
		return Profile(s), nil
	default:
		return "", zerr.With(ErrInvalidProfile, "profile", s)
	}
}

// BuildType returns the value passed to meson's --buildtype.
func (p Profile) BuildType() string {
	return string(p)
}

// LibName is the base name of the native library, as passed to -l.
const LibName = "ui"

// Artifact locates the built native library.
type Artifact struct {
	// Dir is the directory the library was written to, used as the cgo
	// link search path.
	Dir string
	// Name is the library base name as passed to -l.
	Name string
	// Kind records how the library was built.
	Kind LibraryKind
}

// LibFileCandidates returns the file names the built library may carry in
// Dir, most likely first. The invoker uses these to verify that a zero exit
// actually produced an artifact.
func (a Artifact) LibFileCandidates(t Target) []string {
	if a.Kind == LibraryShared {
		switch t.OS {
		case OSDarwin:
			return []string{"lib" + a.Name + ".dylib"}
		case OSWindows:
			return []string{a.Name + ".dll", "lib" + a.Name + ".dll"}
		default:
			return []string{"lib" + a.Name + ".so"}
		}
	}
	if t.OS == OSWindows {
		return []string{"lib" + a.Name + ".a", a.Name + ".lib"}
	}
	return []string{"lib" + a.Name + ".a"}
}
