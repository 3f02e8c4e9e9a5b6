// Package ports defines the interfaces between the core and the adapters.
package ports

import "go.trai.ch/pim/internal/core/domain"

// ManifestLoader defines the interface for loading a dependency manifest.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Discover walks up from cwd looking for a manifest file and returns its path.
	Discover(cwd string) (string, error)

	// Load reads and parses the manifest at the given path.
	Load(path string) (*domain.Manifest, error)
}
