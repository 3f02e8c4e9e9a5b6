// Package manifest provides the Pipfile loader for pim.
package manifest

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader for TOML Pipfiles.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Discover walks up from cwd to the filesystem root looking for a Pipfile.
func (l *Loader) Discover(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		candidate := filepath.Join(currentDir, domain.DefaultManifestName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			l.Logger.Info("using manifest at " + candidate)
			return candidate, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			return "", zerr.With(domain.ErrManifestNotFound, "cwd", cwd)
		}
		currentDir = parent
	}
}

// Load reads and parses the manifest at the given path.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var dto pipfileDTO
	if err := toml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}

	m := domain.NewManifest(path)

	for _, src := range dto.Sources {
		// verify_ssl defaults to on when the manifest omits it.
		verify := true
		if src.VerifySSL != nil {
			verify = *src.VerifySSL
		}
		m.Sources = append(m.Sources, domain.Source{
			Name:      src.Name,
			URL:       src.URL,
			VerifySSL: verify,
		})
	}

	if err := fillSet(m.Packages, dto.Packages); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := fillSet(m.DevPackages, dto.DevPackages); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	m.Requires = domain.Requires{
		PythonVersion:     dto.Requires.PythonVersion,
		PythonFullVersion: dto.Requires.PythonFullVersion,
	}

	return m, nil
}

// fillSet maps one manifest section into a package set. Section entries are
// processed in sorted declared-name order so loading is deterministic.
func fillSet(set *domain.PackageSet, entries map[string]any) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, declared := range names {
		dep, err := mapDependency(declared, entries[declared])
		if err != nil {
			return err
		}
		if err := set.Add(dep); err != nil {
			return err
		}
	}
	return nil
}

// mapDependency converts one section entry. The value is either a bare
// constraint string or an inline table with version and qualifiers.
func mapDependency(declared string, value any) (domain.Dependency, error) {
	dep := domain.Dependency{
		Name:         domain.NormalizeName(declared),
		DeclaredName: declared,
	}

	switch v := value.(type) {
	case string:
		constraint, err := domain.ParseConstraint(v)
		if err != nil {
			return domain.Dependency{}, zerr.With(err, "package", declared)
		}
		dep.Constraint = constraint

	case map[string]any:
		constraint, err := domain.ParseConstraint(stringField(v, "version"))
		if err != nil {
			return domain.Dependency{}, zerr.With(err, "package", declared)
		}
		dep.Constraint = constraint
		dep.Markers = stringField(v, "markers")
		dep.Index = stringField(v, "index")
		dep.SysPlatform = stringField(v, "sys_platform")
		if extras, ok := v["extras"].([]any); ok {
			for _, e := range extras {
				if s, ok := e.(string); ok {
					dep.Extras = append(dep.Extras, s)
				}
			}
		}

	default:
		err := zerr.With(domain.ErrInvalidConstraint, "package", declared)
		return domain.Dependency{}, zerr.With(err, "reason", "entry must be a string or a table")
	}

	return dep, nil
}

func stringField(table map[string]any, key string) string {
	s, _ := table[key].(string)
	return s
}
