package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Verifier checks for build artifacts on disk.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// FindAny returns the first of the candidate file names that exists under
// dir. The second return is false when none exist. Build systems name the
// produced library differently per platform, so callers pass every plausible
// name.
func (v *Verifier) FindAny(dir string, names []string) (string, bool, error) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", false, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
		}
		return path, true, nil
	}
	return "", false, nil
}
