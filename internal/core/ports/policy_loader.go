package ports

import "go.trai.ch/pim/internal/core/domain"

// PolicyLoader defines the interface for loading the optional project policy.
//
//go:generate mockgen -source=policy_loader.go -destination=mocks/mock_policy_loader.go -package=mocks
type PolicyLoader interface {
	// Load reads the policy file at the given path. A missing file is not an
	// error; it yields the zero policy.
	Load(path string) (domain.Policy, error)
}
