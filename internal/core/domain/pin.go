package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// Names of the pinned dependencies.
const (
	// DepLibui is the native library whose sources are built and bound.
	DepLibui = "libui-ng"
	// DepMeson is the build generator fetched when building from source.
	DepMeson = "meson"
	// DepNinja is the fast build executor fetched under StrategyNinjaFetched.
	DepNinja = "ninja"
)

var revisionPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Pin is an exact upstream revision of one dependency. Revisions are always
// consulted from the pin table, never inferred from branches or tags.
type Pin struct {
	Name     string
	Repo     string
	Revision string
}

// Validate checks that the pin carries a usable repository URL and a full
// 40-hex revision.
func (p Pin) Validate() error {
	if p.Repo == "" {
		return zerr.With(ErrPinMissingRepo, "dependency", p.Name)
	}
	if !revisionPattern.MatchString(p.Revision) {
		return zerr.With(zerr.With(ErrPinInvalidRevision, "dependency", p.Name), "revision", p.Revision)
	}
	return nil
}

// PinSet is the revision table for one release of the tool.
type PinSet struct {
	Release string
	Pins    map[string]Pin
}

// Lookup returns the pin for a dependency name.
func (ps PinSet) Lookup(name string) (Pin, error) {
	pin, ok := ps.Pins[name]
	if !ok {
		return Pin{}, zerr.With(zerr.With(ErrDependencyNotPinned, "dependency", name), "release", ps.Release)
	}
	return pin, nil
}

// Validate checks every pin in the set.
func (ps PinSet) Validate() error {
	for _, pin := range ps.Pins {
		if err := pin.Validate(); err != nil {
			return err
		}
	}
	return nil
}
