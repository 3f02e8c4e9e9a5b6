package domain

import (
	"iter"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Scope indicates which section of the manifest a dependency was declared in.
type Scope string

const (
	// ScopeRuntime marks packages required at run time.
	ScopeRuntime Scope = "runtime"
	// ScopeDevelop marks packages required only during development.
	ScopeDevelop Scope = "develop"
)

// Dependency is one declared package: a name, a version constraint, and the
// optional qualifiers the manifest format allows.
type Dependency struct {
	// Name is the canonical package name (see NormalizeName).
	Name string

	// DeclaredName is the name exactly as written in the manifest.
	DeclaredName string

	Scope      Scope
	Constraint Constraint

	// Extras are optional feature names requested from the package.
	Extras []string

	// Markers is an environment marker expression, carried verbatim.
	Markers string

	// SysPlatform restricts the package to one platform, carried verbatim.
	SysPlatform string

	// Index names the source the package should be fetched from.
	// Empty means the default source.
	Index string
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName canonicalizes a package name: lowercase, with every run of
// hyphens, underscores and dots collapsed into a single hyphen. "Pillow_HEIF"
// and "pillow.heif" name the same package.
func NormalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// PackageSet is the ordered collection of dependencies declared in one
// manifest section. Canonical names are unique within a set.
type PackageSet struct {
	scope Scope
	order []string
	deps  map[string]Dependency
}

// NewPackageSet creates an empty PackageSet for the given scope.
func NewPackageSet(scope Scope) *PackageSet {
	return &PackageSet{
		scope: scope,
		deps:  make(map[string]Dependency),
	}
}

// Scope returns the section this set was declared in.
func (s *PackageSet) Scope() Scope {
	return s.scope
}

// Add inserts a dependency into the set. The dependency's canonical name must
// be non-empty and not already present.
func (s *PackageSet) Add(d Dependency) error {
	if d.Name == "" {
		return zerr.With(ErrEmptyPackageName, "scope", string(s.scope))
	}
	if existing, exists := s.deps[d.Name]; exists {
		err := zerr.With(ErrDuplicatePackage, "package", d.Name)
		err = zerr.With(err, "scope", string(s.scope))
		err = zerr.With(err, "declared_as", existing.DeclaredName+", "+d.DeclaredName)
		return err
	}
	d.Scope = s.scope
	s.deps[d.Name] = d
	s.order = append(s.order, d.Name)
	return nil
}

// Get returns the dependency with the given name, normalizing it first.
func (s *PackageSet) Get(name string) (Dependency, bool) {
	d, ok := s.deps[NormalizeName(name)]
	return d, ok
}

// Len returns the number of dependencies in the set.
func (s *PackageSet) Len() int {
	return len(s.order)
}

// Names returns the canonical names in declaration order.
func (s *PackageSet) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// All returns an iterator over the dependencies in declaration order.
func (s *PackageSet) All() iter.Seq[Dependency] {
	return func(yield func(Dependency) bool) {
		for _, name := range s.order {
			if !yield(s.deps[name]) {
				return
			}
		}
	}
}
