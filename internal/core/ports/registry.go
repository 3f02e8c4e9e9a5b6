package ports

import (
	"context"

	"go.trai.ch/pim/internal/core/domain"
)

// PackageStatus is the outcome of probing a registry for a package name.
type PackageStatus int

const (
	// StatusFound means the registry knows the package name.
	StatusFound PackageStatus = iota
	// StatusMissing means the registry answered that the name does not exist.
	StatusMissing
	// StatusUnknown means the probe could not get an answer (network failure,
	// server error). Not a manifest defect.
	StatusUnknown
)

// Registry defines the interface for probing a package registry.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// CheckPackage asks the source whether the canonical package name exists.
	CheckPackage(ctx context.Context, source domain.Source, name string) (PackageStatus, error)
}
