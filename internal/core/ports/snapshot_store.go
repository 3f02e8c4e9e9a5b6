package ports

import "go.trai.ch/pim/internal/core/domain"

// SnapshotStore persists structural snapshots of manifests.
//
//go:generate mockgen -source=snapshot_store.go -destination=mocks/mock_snapshot_store.go -package=mocks
type SnapshotStore interface {
	// Capture fingerprints the manifest file and writes a snapshot next to it.
	Capture(m *domain.Manifest) (*domain.Snapshot, error)

	// Load reads the snapshot for the given manifest path. The second return
	// value is false when no snapshot exists.
	Load(manifestPath string) (*domain.Snapshot, bool, error)

	// Fingerprint hashes the raw bytes of the manifest file.
	Fingerprint(manifestPath string) (string, error)
}
