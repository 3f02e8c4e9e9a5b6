// Package lock persists structural manifest snapshots as flat JSON files.
package lock

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/zerr"
)

// SnapshotSuffix is appended to the manifest file name to form the snapshot
// path (Pipfile -> Pipfile.pim.lock).
const SnapshotSuffix = ".pim.lock"

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore next to the manifest file.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new snapshot Store.
func NewStore() *Store {
	return &Store{}
}

// snapshotPath derives the snapshot location from the manifest path.
func snapshotPath(manifestPath string) string {
	return filepath.Clean(manifestPath) + SnapshotSuffix
}

// Fingerprint hashes the raw bytes of the manifest file.
func (s *Store) Fingerprint(manifestPath string) (string, error) {
	f, err := os.Open(manifestPath) //nolint:gosec // path is provided by user
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open manifest"), "path", manifestPath)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash manifest"), "path", manifestPath)
	}

	return strconv.FormatUint(hasher.Sum64(), 16), nil
}

// Capture fingerprints the manifest file and writes a snapshot next to it.
func (s *Store) Capture(m *domain.Manifest) (*domain.Snapshot, error) {
	fingerprint, err := s.Fingerprint(m.Path)
	if err != nil {
		return nil, err
	}

	snap := domain.NewSnapshot(m, fingerprint)

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal snapshot")
	}

	path := snapshotPath(m.Path)
	//nolint:gosec // Path is derived from the user-provided manifest path
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to write snapshot"), "path", path)
	}

	return snap, nil
}

// Load reads the snapshot for the given manifest path.
func (s *Store) Load(manifestPath string) (*domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := snapshotPath(manifestPath)
	//nolint:gosec // Path is derived from the user-provided manifest path
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, "failed to read snapshot"), "path", path)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to unmarshal snapshot"), "path", path)
	}

	return &snap, true, nil
}
