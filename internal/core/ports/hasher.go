package ports

// Hasher computes content fingerprints.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// TreeFingerprint computes a deterministic fingerprint over every
	// file under root, .git excluded. Identical trees produce identical
	// fingerprints regardless of walk timing.
	TreeFingerprint(root string) (string, error)

	// FileHash computes the content hash of a single file.
	FileHash(path string) (uint64, error)
}
