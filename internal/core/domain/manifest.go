// Package domain contains the core domain model for dependency manifests.
package domain

import (
	"net/url"

	"go.trai.ch/zerr"
)

// DefaultManifestName is the file name the loader discovers.
const DefaultManifestName = "Pipfile"

// DefaultPolicyName is the policy file name looked up next to the manifest.
const DefaultPolicyName = ".pim.yaml"

// Source is a package registry reference.
type Source struct {
	// Name identifies the source so packages can refer to it.
	Name string

	// URL is the registry endpoint.
	URL string

	// VerifySSL controls TLS certificate verification for this source.
	VerifySSL bool
}

// supportedSchemes are the URL schemes a source may use.
var supportedSchemes = map[string]bool{
	"https": true,
	"http":  true,
}

// Validate checks that the source URL is well-formed and uses a supported
// scheme with a non-empty host.
func (s Source) Validate() error {
	u, err := url.Parse(s.URL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid source url"), "source", s.Name)
	}
	if !supportedSchemes[u.Scheme] {
		err := zerr.With(ErrInvalidSourceURL, "source", s.Name)
		err = zerr.With(err, "url", s.URL)
		return zerr.With(err, "scheme", u.Scheme)
	}
	if u.Host == "" {
		err := zerr.With(ErrInvalidSourceURL, "source", s.Name)
		return zerr.With(err, "url", s.URL)
	}
	return nil
}

// Requires is the interpreter requirement: a minor-version selector and an
// exact full-version pin. Either or both may be empty.
type Requires struct {
	// PythonVersion is the minor-version selector, e.g. "3.11".
	PythonVersion string

	// PythonFullVersion is the exact pin, e.g. "3.11.0".
	PythonFullVersion string
}

// Target returns the most specific interpreter version declared.
func (r Requires) Target() string {
	if r.PythonFullVersion != "" {
		return r.PythonFullVersion
	}
	return r.PythonVersion
}

// Consistent checks that the full-version pin satisfies the minor-version
// selector when both are declared.
func (r Requires) Consistent() error {
	if r.PythonVersion == "" || r.PythonFullVersion == "" {
		return nil
	}

	selector, err := ParseVersion(r.PythonVersion)
	if err != nil {
		return zerr.With(err, "python_version", r.PythonVersion)
	}
	full, err := ParseVersion(r.PythonFullVersion)
	if err != nil {
		return zerr.With(err, "python_full_version", r.PythonFullVersion)
	}

	if !full.ReleasePrefixMatch(selector.Release) {
		err := zerr.With(ErrInterpreterMismatch, "python_version", r.PythonVersion)
		return zerr.With(err, "python_full_version", r.PythonFullVersion)
	}
	return nil
}

// Manifest is a complete dependency declaration set: registry sources, the
// runtime and development package lists, and the interpreter requirement.
// A manifest is built once by the loader and never mutated afterwards.
type Manifest struct {
	// Path is where the manifest was loaded from.
	Path string

	Sources     []Source
	Packages    *PackageSet
	DevPackages *PackageSet
	Requires    Requires
}

// NewManifest creates an empty manifest with initialized package sets.
func NewManifest(path string) *Manifest {
	return &Manifest{
		Path:        path,
		Packages:    NewPackageSet(ScopeRuntime),
		DevPackages: NewPackageSet(ScopeDevelop),
	}
}

// SourceNamed returns the source with the given name.
func (m *Manifest) SourceNamed(name string) (Source, bool) {
	for _, s := range m.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// DefaultSource returns the first declared source, which acts as the default
// for packages that do not name an index.
func (m *Manifest) DefaultSource() (Source, bool) {
	if len(m.Sources) == 0 {
		return Source{}, false
	}
	return m.Sources[0], true
}

// Set returns the package set for the given scope.
func (m *Manifest) Set(scope Scope) *PackageSet {
	if scope == ScopeDevelop {
		return m.DevPackages
	}
	return m.Packages
}

// Overlap returns the canonical names declared in both the runtime and the
// development sections. Appearing in both is allowed; callers report it as
// information only.
func (m *Manifest) Overlap() []string {
	var both []string
	for _, name := range m.Packages.Names() {
		if _, ok := m.DevPackages.Get(name); ok {
			both = append(both, name)
		}
	}
	return both
}
