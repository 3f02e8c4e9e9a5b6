package domain

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// Snapshot is a structural record of a manifest: its content fingerprint and
// the declared constraint per canonical package name. It lets a later check
// detect that the manifest changed since the snapshot was taken. It is not an
// installer lockfile; nothing in it is resolved.
type Snapshot struct {
	// Version is the snapshot format version, for future schema migrations.
	Version int `json:"version"`

	// Fingerprint is the hash of the raw manifest bytes.
	Fingerprint string `json:"fingerprint"`

	// Packages maps canonical runtime package names to declared constraints.
	Packages map[string]string `json:"packages"`

	// DevPackages maps canonical development package names to declared
	// constraints.
	DevPackages map[string]string `json:"devPackages"`
}

// NewSnapshot captures the declaration sets of a manifest under the given
// fingerprint.
func NewSnapshot(m *Manifest, fingerprint string) *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		Fingerprint: fingerprint,
		Packages:    make(map[string]string),
		DevPackages: make(map[string]string),
	}
	for dep := range m.Packages.All() {
		s.Packages[dep.Name] = dep.Constraint.String()
	}
	for dep := range m.DevPackages.All() {
		s.DevPackages[dep.Name] = dep.Constraint.String()
	}
	return s
}
