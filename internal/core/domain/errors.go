package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when no manifest file can be discovered.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrDuplicatePackage is returned when a section declares the same
	// canonical package name twice.
	ErrDuplicatePackage = zerr.New("duplicate package")

	// ErrEmptyPackageName is returned when a section declares a package with
	// an empty name.
	ErrEmptyPackageName = zerr.New("empty package name")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidConstraint is returned when a version constraint cannot be parsed.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrInvalidSourceURL is returned when a source URL is malformed or uses
	// an unsupported scheme.
	ErrInvalidSourceURL = zerr.New("invalid source url")

	// ErrInterpreterMismatch is returned when the exact interpreter pin does
	// not satisfy the minor-version selector.
	ErrInterpreterMismatch = zerr.New("interpreter version mismatch")

	// ErrChecksFailed signals that the analyzer produced error-severity
	// findings. The CLI maps it to a non-zero exit without re-reporting.
	ErrChecksFailed = zerr.New("manifest checks failed")

	// ErrSnapshotMissing is returned when verification is requested but no
	// snapshot has been written yet.
	ErrSnapshotMissing = zerr.New("snapshot missing")
)
