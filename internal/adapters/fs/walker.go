// Package fs provides file system adapters for walking and fingerprinting
// source trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root in lexical order, skipping version
// control directories and any names matching the ignore patterns. Yielded
// paths include the root prefix, the way filepath.WalkDir reports them.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if skipDir(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}

			if ignored(d.Name(), ignores) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// skipDir reports whether a directory is excluded from the walk.
// Version control metadata is always excluded.
func skipDir(name string, ignores []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}
	return ignored(name, ignores)
}

func ignored(name string, ignores []string) bool {
	for _, pattern := range ignores {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
