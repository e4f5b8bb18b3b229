package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content fingerprints for files and source trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// FileHash computes the XXHash of a file's content.
func (h *Hasher) FileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// TreeFingerprint computes a single hash over every file under root, version
// control metadata excluded. Paths are hashed relative to root so identical
// trees fingerprint identically wherever they are staged. filepath.WalkDir
// visits entries in lexical order, which keeps the digest stable.
func (h *Hasher) TreeFingerprint(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", root)
	}

	if !info.IsDir() {
		hash, err := h.FileHash(root)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%016x", hash), nil
	}

	hasher := xxhash.New()

	for path := range h.walker.WalkFiles(root, nil) {
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0}) // Separator

		fileHash, err := h.FileHash(path)
		if err != nil {
			return "", err
		}

		if err := binary.Write(hasher, binary.LittleEndian, fileHash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
