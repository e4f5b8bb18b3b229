package domain

import "time"

// StagingEntry records one successfully fetched dependency.
type StagingEntry struct {
	// Revision is the pinned commit the checkout is at.
	Revision string `json:"revision"`
	// Fingerprint is the tree fingerprint of the checkout, .git excluded.
	Fingerprint string `json:"fingerprint"`
	// FetchedAt is when the checkout was last verified.
	FetchedAt time.Time `json:"fetched_at"`
}

// StagingManifest is the record of what a staging directory holds. Under the
// reuse policy a checkout is trusted only when its manifest entry matches the
// pin and the tree fingerprint still verifies.
type StagingManifest struct {
	Release string                  `json:"release"`
	Entries map[string]StagingEntry `json:"entries"`
}

// NewStagingManifest returns an empty manifest for a release.
func NewStagingManifest(release string) *StagingManifest {
	return &StagingManifest{
		Release: release,
		Entries: make(map[string]StagingEntry),
	}
}

// Entry returns the entry for a dependency, if recorded.
func (m *StagingManifest) Entry(dep string) (StagingEntry, bool) {
	if m == nil || m.Entries == nil {
		return StagingEntry{}, false
	}
	entry, ok := m.Entries[dep]
	return entry, ok
}

// Record stores the entry for a dependency.
func (m *StagingManifest) Record(dep string, entry StagingEntry) {
	if m.Entries == nil {
		m.Entries = make(map[string]StagingEntry)
	}
	m.Entries[dep] = entry
}
