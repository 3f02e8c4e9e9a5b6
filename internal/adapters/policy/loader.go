// Package policy provides the loader for the optional .pim.yaml policy file.
package policy

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.PolicyLoader = (*Loader)(nil)

// policyFile represents the structure of the .pim.yaml policy file.
type policyFile struct {
	Version        string   `yaml:"version"`
	AllowedSchemes []string `yaml:"allowedSchemes"`
	AllowedHosts   []string `yaml:"allowedHosts"`
	DenyPackages   []string `yaml:"denyPackages"`
	RequirePinned  bool     `yaml:"requirePinned"`
}

// Loader implements ports.PolicyLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new policy Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the policy file at the given path. A missing file yields the
// zero policy.
func (l *Loader) Load(path string) (domain.Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Policy{}, nil
		}
		return domain.Policy{}, zerr.With(zerr.Wrap(err, "failed to read policy file"), "path", path)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Policy{}, zerr.With(zerr.Wrap(err, "failed to parse policy file"), "path", path)
	}

	return domain.Policy{
		AllowedSchemes: file.AllowedSchemes,
		AllowedHosts:   file.AllowedHosts,
		DenyPackages:   file.DenyPackages,
		RequirePinned:  file.RequirePinned,
	}, nil
}
